package controller

import (
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	UploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{UploadService: uploadService}
}

// swagger:model CreateFolderRequest
type CreateFolderRequest struct {
	Scope    string `json:"scope" binding:"required,oneof=public private"`
	Category string `json:"category" binding:"required"`
	Name     string `json:"name" binding:"required,min=2"`
}

// swagger:model DeleteFilesRequest
type DeleteFilesRequest struct {
	Filenames []string `json:"filenames" binding:"required,min=1"`
}

// swagger:model RenameFileRequest
type RenameFileRequest struct {
	OldName string `json:"oldName" binding:"required"`
	NewName string `json:"newName" binding:"required,min=2"`
}

func folderRef(ctx *gin.Context) service.FolderRef {
	return service.FolderRef{
		Scope:    ctx.Param("scope"),
		Category: ctx.Param("category"),
		Folder:   ctx.Param("folder"),
	}
}

func (c *UploadController) list(ctx *gin.Context, scope, folder string) {
	items, err := c.UploadService.ListPath(ctx.Request.Context(), scope, folder)
	respond(ctx, items, err)
}

// ListFolder godoc
// @Summary List a folder of the public tree
// @Tags Uploads
// @Produce  json
// @Security CookieAuth
// @Param   folder query string false "Folder path, e.g. blog/spring"
// @Success 200 {array} service.FileItem
// @Router /api/uploads [get]
func (c *UploadController) ListFolder(ctx *gin.Context) {
	c.list(ctx, util.ScopePublic, ctx.Query("folder"))
}

// ListPublic godoc
// @Summary List the public tree
// @Tags Uploads
// @Produce  json
// @Param   slug path string false "Category"
// @Param   nameFolder path string false "Folder"
// @Success 200 {array} service.FileItem
// @Router /api/uploads/public/{slug}/{nameFolder} [get]
func (c *UploadController) ListPublic(ctx *gin.Context) {
	c.list(ctx, util.ScopePublic, path.Join(ctx.Param("slug"), ctx.Param("nameFolder")))
}

// ListPrivate godoc
// @Summary List the private tree
// @Tags Uploads
// @Produce  json
// @Security CookieAuth
// @Param   slug path string false "Category"
// @Param   nameFolder path string false "Folder"
// @Success 200 {array} service.FileItem
// @Router /api/uploads/private/{slug}/{nameFolder} [get]
func (c *UploadController) ListPrivate(ctx *gin.Context) {
	c.list(ctx, util.ScopePrivate, path.Join(ctx.Param("slug"), ctx.Param("nameFolder")))
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags Uploads
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body CreateFolderRequest true "Folder"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "Folder already exists"
// @Router /api/uploads [post]
func (c *UploadController) CreateFolder(ctx *gin.Context) {
	var req CreateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	folderPath, err := c.UploadService.CreateFolder(ctx.Request.Context(), req.Scope, req.Category, req.Name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Folder created successfully", "path": folderPath})
}

// UploadFiles godoc
// @Summary Upload files into a folder
// @Tags Uploads
// @Accept  multipart/form-data
// @Produce  json
// @Security CookieAuth
// @Param   scope path string true "public or private"
// @Param   category path string true "Category"
// @Param   folder path string true "Folder"
// @Param   files formData file true "Files, at most 100"
// @Success 201 {array} service.UploadedFile
// @Router /api/uploads/{scope}/{category}/{folder} [post]
func (c *UploadController) UploadFiles(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "Invalid multipart form")
		return
	}

	files, err := c.UploadService.Upload(ctx.Request.Context(), folderRef(ctx), form.File["files"])
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Files uploaded successfully", "files": files})
}

// DeleteFolder godoc
// @Summary Delete a folder and everything in it
// @Tags Uploads
// @Produce  json
// @Security CookieAuth
// @Param   scope path string true "public or private"
// @Param   category path string true "Category"
// @Param   folder path string true "Folder"
// @Success 200 {object} util.Response
// @Router /api/uploads/{scope}/{category}/{folder} [delete]
func (c *UploadController) DeleteFolder(ctx *gin.Context) {
	if err := c.UploadService.DeleteFolder(ctx.Request.Context(), folderRef(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Folder deleted successfully")
}

// DeleteFiles godoc
// @Summary Delete several files
// @Description Each file is handled on its own; failures are reported per file
// @Tags Uploads
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   scope path string true "public or private"
// @Param   category path string true "Category"
// @Param   folder path string true "Folder"
// @Param   body body DeleteFilesRequest true "File names"
// @Success 200 {object} service.DeleteFilesResult
// @Router /api/uploads/{scope}/{category}/{folder}/multiple [delete]
func (c *UploadController) DeleteFiles(ctx *gin.Context) {
	var req DeleteFilesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	res, err := c.UploadService.DeleteFiles(ctx.Request.Context(), folderRef(ctx), req.Filenames)
	respond(ctx, res, err)
}

// RenameFile godoc
// @Summary Rename a file
// @Description The new base name is slugified and the old extension kept
// @Tags Uploads
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   scope path string true "public or private"
// @Param   category path string true "Category"
// @Param   folder path string true "Folder"
// @Param   body body RenameFileRequest true "Names"
// @Success 200 {object} util.Response
// @Router /api/uploads/{scope}/{category}/{folder}/rename [patch]
func (c *UploadController) RenameFile(ctx *gin.Context) {
	var req RenameFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	name, err := c.UploadService.Rename(ctx.Request.Context(), folderRef(ctx), req.OldName, req.NewName)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "File renamed successfully", "name": name})
}

// DeleteFile godoc
// @Summary Delete a file
// @Tags Uploads
// @Produce  json
// @Security CookieAuth
// @Param   scope path string true "public or private"
// @Param   category path string true "Category"
// @Param   folder path string true "Folder"
// @Param   filename path string true "File name"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "File not found"
// @Router /api/uploads/{scope}/{category}/{folder}/{filename} [delete]
func (c *UploadController) DeleteFile(ctx *gin.Context) {
	if err := c.UploadService.DeleteFile(ctx.Request.Context(), folderRef(ctx), ctx.Param("filename")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "File deleted successfully")
}

// ServeFile streams a stored file with Range and conditional request
// support. The scope is fixed by the route it is mounted on.
func (c *UploadController) ServeFile(scope string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		obj, name, err := c.UploadService.Open(ctx.Request.Context(), scope, ctx.Param("filepath"))
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		defer obj.Close()

		if scope == util.ScopePrivate {
			ctx.Header("Cache-Control", "private, no-store")
		}
		http.ServeContent(ctx.Writer, ctx.Request, name, obj.ModTime, obj.Content)
	}
}

package controller

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupService *service.GroupService
	Codec        *hashid.Codec
}

func NewGroupController(groupService *service.GroupService, codec *hashid.Codec) *GroupController {
	return &GroupController{GroupService: groupService, Codec: codec}
}

// GetGroups godoc
// @Summary List groups
// @Tags Groups
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.PageResponse{data=[]dto.GroupView}
// @Router /api/group [get]
func (c *GroupController) GetGroups(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	groups, total, err := c.GroupService.List(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, groups, total, p)
}

// CreateGroup godoc
// @Summary Create a group
// @Tags Groups
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.GroupInput true "Group"
// @Success 201 {object} dto.GroupView
// @Failure 400 {object} util.Response
// @Router /api/group [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req service.GroupInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	group, err := c.GroupService.Create(req, util.GetUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, dto.ToGroupView(group, c.Codec))
}

// GetGroup godoc
// @Summary Get a group
// @Tags Groups
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Group id"
// @Success 200 {object} dto.GroupView
// @Failure 404 {object} util.Response
// @Router /api/group/{hashId} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	group, err := c.GroupService.Get(util.ParamID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToGroupView(group, c.Codec))
}

// UpdateGroup godoc
// @Summary Replace a group and its relations
// @Tags Groups
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Group id"
// @Param   body body service.GroupInput true "Group"
// @Success 200 {object} dto.GroupView
// @Router /api/group/{hashId} [patch]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	var req service.GroupInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	group, err := c.GroupService.Update(util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToGroupView(group, c.Codec))
}

// DeleteGroup godoc
// @Summary Delete a group
// @Tags Groups
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Group id"
// @Success 200 {object} util.Response
// @Router /api/group/{hashId} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	if err := c.GroupService.Delete(util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Group deleted successfully")
}

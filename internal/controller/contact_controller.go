package controller

import (
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{ContactService: contactService}
}

// CreateContact godoc
// @Summary Send a contact request
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param   body body service.ContactInput true "Contact"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "Invalid phone number"
// @Router /api/contacts [post]
func (c *ContactController) CreateContact(ctx *gin.Context) {
	var req service.ContactInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if _, err := c.ContactService.Create(req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusCreated, "Contact request sent successfully")
}

// GetContacts godoc
// @Summary List contact requests
// @Tags Contacts
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(5)
// @Success 200 {object} util.PageResponse{data=[]dto.ContactView}
// @Router /api/contacts [get]
func (c *ContactController) GetContacts(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultContactLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	contacts, total, err := c.ContactService.List(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, contacts, total, p)
}

// DeleteContact godoc
// @Summary Delete a contact request
// @Tags Contacts
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Contact id"
// @Success 200 {object} util.Response
// @Router /api/contacts/{hashId} [delete]
func (c *ContactController) DeleteContact(ctx *gin.Context) {
	if err := c.ContactService.Delete(util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Contact deleted successfully")
}

// ReplyContact godoc
// @Summary Answer a contact request by mail
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.ReplyInput true "Reply"
// @Success 200 {object} util.Response
// @Router /api/contacts/reply [post]
func (c *ContactController) ReplyContact(ctx *gin.Context) {
	var req service.ReplyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.ContactService.Reply(ctx.Request.Context(), req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Reply sent successfully")
}

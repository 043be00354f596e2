package controller

import (
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClientController is the student area. Everything is scoped to the session
// user and their groups.
type ClientController struct {
	ClientService *service.ClientService
	UserService   *service.UserService
}

func NewClientController(clientService *service.ClientService, userService *service.UserService) *ClientController {
	return &ClientController{ClientService: clientService, UserService: userService}
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// GetProfile godoc
// @Summary Session user profile
// @Tags Client
// @Produce  json
// @Security CookieAuth
// @Success 200 {object} dto.UserView
// @Router /api/client/get-profile [get]
func (c *ClientController) GetProfile(ctx *gin.Context) {
	view, err := c.ClientService.Profile(util.GetUserID(ctx))
	respond(ctx, view, err)
}

// ChangePassword godoc
// @Summary Change the session user's password
// @Tags Client
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body ChangePasswordRequest true "New password"
// @Success 200 {object} util.Response
// @Router /api/client/change-password [post]
func (c *ClientController) ChangePassword(ctx *gin.Context) {
	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.UserService.ChangePassword(ctx.Request.Context(), util.GetUserID(ctx), req.NewPassword); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Password changed successfully")
}

// GetLessons godoc
// @Summary Active lessons shared with the user's groups
// @Tags Client
// @Produce  json
// @Security CookieAuth
// @Success 200 {array} dto.LessonView
// @Router /api/client/lesson [get]
func (c *ClientController) GetLessons(ctx *gin.Context) {
	lessons, err := c.ClientService.Lessons(util.GetUserID(ctx))
	respond(ctx, lessons, err)
}

// GetLesson godoc
// @Summary A lesson shared with the user's groups
// @Tags Client
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Lesson slug"
// @Success 200 {object} dto.LessonView
// @Failure 404 {object} util.Response
// @Router /api/client/lesson/{slug} [get]
func (c *ClientController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ClientService.Lesson(util.GetUserID(ctx), util.IsAdmin(ctx), ctx.Param("slug"))
	respond(ctx, lesson, err)
}

// GetExams godoc
// @Summary Active exams shared with the user's groups
// @Description Correct answers are never included
// @Tags Client
// @Produce  json
// @Security CookieAuth
// @Success 200 {array} dto.ExamView
// @Router /api/client/exam [get]
func (c *ClientController) GetExams(ctx *gin.Context) {
	exams, err := c.ClientService.Exams(util.GetUserID(ctx))
	respond(ctx, exams, err)
}

// GetExam godoc
// @Summary An exam shared with the user's groups
// @Tags Client
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Exam slug"
// @Success 200 {object} dto.ExamView
// @Failure 404 {object} util.Response
// @Router /api/client/exam/{slug} [get]
func (c *ClientController) GetExam(ctx *gin.Context) {
	exam, err := c.ClientService.Exam(util.GetUserID(ctx), util.IsAdmin(ctx), ctx.Param("slug"))
	respond(ctx, exam, err)
}

package controller

import (
	"fmt"
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Codec       *hashid.Codec
}

func NewUserController(userService *service.UserService, codec *hashid.Codec) *UserController {
	return &UserController{
		UserService: userService,
		Codec:       codec,
	}
}

// swagger:model ActivateManyRequest
type ActivateManyRequest struct {
	IDs   []string `json:"ids" binding:"required,min=1"`
	Value string   `json:"value" binding:"required,oneof=true false"`
}

// swagger:model ActivateRequest
type ActivateRequest struct {
	Activate string `json:"activate" binding:"required,oneof=true false"`
}

func (c *UserController) respondUser(ctx *gin.Context, code int, message string, user dto.UserView) {
	ctx.JSON(code, gin.H{"success": true, "message": message, "user": user})
}

// GetUsers godoc
// @Summary List users
// @Tags Users
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Param   login query string false "Login contains"
// @Param   email query string false "Email contains"
// @Param   role query string false "Role"
// @Param   group query string false "Group id"
// @Success 200 {object} util.PageResponse{data=[]dto.UserView}
// @Failure 401 {object} util.Response
// @Router /api/user [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	q := service.UserListQuery{
		Login: ctx.Query("login"),
		Email: ctx.Query("email"),
		Role:  ctx.Query("role"),
		Group: ctx.Query("group"),
	}
	users, total, err := c.UserService.List(q, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, users, total, p)
}

// CreateUser godoc
// @Summary Create a user and mail the verification code
// @Tags Users
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.CreateUserInput true "New user"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "Login or email already in use"
// @Router /api/user [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.CreateUserInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	user, err := c.UserService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.respondUser(ctx, http.StatusCreated, "User created successfully", dto.ToUserView(user, c.Codec))
}

// Verify godoc
// @Summary Verify an account with the mailed code
// @Tags Users
// @Accept  json
// @Produce  json
// @Param   body body service.VerifyInput true "Account and code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/user/verify [post]
func (c *UserController) Verify(ctx *gin.Context) {
	var req service.VerifyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.UserService.Verify(ctx.Request.Context(), req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Account verified successfully")
}

// ResendOTP godoc
// @Summary Send a new verification code
// @Tags Users
// @Accept  json
// @Produce  json
// @Param   body body service.CredentialsInput true "Account"
// @Success 200 {object} util.Response
// @Router /api/user/resend-otp [post]
func (c *UserController) ResendOTP(ctx *gin.Context) {
	var req service.CredentialsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.UserService.ResendOTP(ctx.Request.Context(), req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "A new OTP code has been sent")
}

// ForgotPassword godoc
// @Summary Mail a password reset code
// @Tags Users
// @Accept  json
// @Produce  json
// @Param   body body service.CredentialsInput true "Account"
// @Success 200 {object} util.Response
// @Router /api/user/forgot-password [post]
func (c *UserController) ForgotPassword(ctx *gin.Context) {
	var req service.CredentialsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.UserService.ForgotPassword(ctx.Request.Context(), req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Password reset code sent to your email")
}

// ResetPassword godoc
// @Summary Set a new password with the reset code
// @Tags Users
// @Accept  json
// @Produce  json
// @Param   body body service.ResetPasswordInput true "Account, code and password"
// @Success 200 {object} util.Response
// @Router /api/user/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	var req service.ResetPasswordInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.UserService.ResetPassword(ctx.Request.Context(), req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Password has been reset successfully")
}

// GenerateUsers godoc
// @Summary Generate temporary client accounts
// @Description Creates the accounts and mails a PDF with their credentials to the administrators
// @Tags Users
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.GenerateUsersInput true "Batch"
// @Success 201 {object} util.Response
// @Router /api/user/generate [post]
func (c *UserController) GenerateUsers(ctx *gin.Context) {
	var req service.GenerateUsersInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	accounts, err := c.UserService.Generate(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusCreated, fmt.Sprintf("%d temporary users created successfully", len(accounts)))
}

// GetProfile godoc
// @Summary Look up a profile
// @Description By login or email; without either the session user is returned
// @Tags Users
// @Produce  json
// @Security CookieAuth
// @Param   login query string false "Login"
// @Param   email query string false "Email"
// @Success 200 {object} dto.UserView
// @Failure 404 {object} util.Response
// @Router /api/user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.UserService.Profile(ctx.Query("login"), ctx.Query("email"), util.GetUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToUserView(user, c.Codec))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Users
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "User id"
// @Param   body body service.ProfileInput true "Fields to change"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/user/profile/{hashId} [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.ProfileInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	user, err := c.UserService.UpdateProfile(util.ParamID(ctx), util.GetUserID(ctx), util.IsAdmin(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.respondUser(ctx, http.StatusOK, "Profile updated successfully", dto.ToUserView(user, c.Codec))
}

// ActivateMany godoc
// @Summary Activate or deactivate several users
// @Tags Users
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body ActivateManyRequest true "Ids and flag"
// @Success 200 {object} util.Response
// @Router /api/user/activate [patch]
func (c *UserController) ActivateMany(ctx *gin.Context) {
	var req ActivateManyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	modified, err := c.UserService.SetActive(req.IDs, req.Value)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Updated %d user(s) to isActive=%s", modified, req.Value),
		"modified": modified,
	})
}

// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "User id"
// @Success 200 {object} dto.UserView
// @Failure 404 {object} util.Response
// @Router /api/user/{hashId} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.Get(util.ParamID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToUserView(user, c.Codec))
}

// UpdateUser godoc
// @Summary Update any user
// @Tags Users
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "User id"
// @Param   body body service.AdminUserInput true "Fields to change"
// @Success 200 {object} util.Response
// @Router /api/user/{hashId} [patch]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req service.AdminUserInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	user, err := c.UserService.AdminUpdate(util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.respondUser(ctx, http.StatusOK, "User updated successfully", dto.ToUserView(user, c.Codec))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Admins may delete anyone, other users only themselves
// @Tags Users
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "User id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/user/{hashId} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.Delete(util.ParamID(ctx), util.GetUserID(ctx), util.IsAdmin(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "User deleted successfully")
}

// ActivateUser godoc
// @Summary Activate or deactivate a user
// @Tags Users
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "User id"
// @Param   body body ActivateRequest true "Flag"
// @Success 200 {object} util.Response
// @Router /api/user/{hashId}/activate [patch]
func (c *UserController) ActivateUser(ctx *gin.Context) {
	var req ActivateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	user, err := c.UserService.Activate(util.ParamID(ctx), req.Activate)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.respondUser(ctx, http.StatusOK, "User active status set to "+req.Activate, dto.ToUserView(user, c.Codec))
}

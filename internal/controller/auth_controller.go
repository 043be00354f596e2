package controller

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 24 * 60 * 60

type AuthController struct {
	AuthService *service.AuthService
	Codec       *hashid.Codec
	IsRelease   bool // cookies are Secure only in release mode
}

func NewAuthController(authService *service.AuthService, codec *hashid.Codec, isRelease bool) *AuthController {
	return &AuthController{
		AuthService: authService,
		Codec:       codec,
		IsRelease:   isRelease,
	}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Login    string `json:"login"`
	Password string `json:"password" binding:"required"`
}

// swagger:model OTPRequest
type OTPRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Login string `json:"login"`
}

// swagger:model OTPLoginRequest
type OTPLoginRequest struct {
	OTPRequest
	OTPCode string `json:"otpCode" binding:"required,min=4,max=8"`
}

type LoginResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    dto.SessionUserView `json:"user"`
}

func (c *AuthController) setSession(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(util.TokenCookie, token, maxAge, "/", "", c.IsRelease, true)
}

func (c *AuthController) respondLoggedIn(ctx *gin.Context, res *service.LoginResult) {
	c.setSession(ctx, res.Token, sessionMaxAge)
	util.Success(ctx, LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    dto.ToSessionUserView(res.User, c.Codec),
	})
}

// Login godoc
// @Summary Log in with a password
// @Description Authenticates by login or email and sets the session cookie
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response "Invalid credentials"
// @Failure 429 {object} util.Response "Too many failed attempts"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	cred := service.Credentials{Login: req.Login, Email: req.Email}
	res, err := c.AuthService.Login(util.NewClientInfo(ctx), cred, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.respondLoggedIn(ctx, res)
}

// Logout godoc
// @Summary Log out
// @Tags Auth
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/auth/logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.setSession(ctx, "logout", -1)
	util.Message(ctx, http.StatusOK, "User logged out!")
}

// RequestOTP godoc
// @Summary Mail a one-time login code
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body OTPRequest true "Login or email"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/auth/request-otp [post]
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req OTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	cred := service.Credentials{Login: req.Login, Email: req.Email}
	if err := c.AuthService.RequestOTP(ctx.Request.Context(), util.NewClientInfo(ctx), cred); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "OTP code sent to your email")
}

// LoginOTP godoc
// @Summary Log in with a one-time code
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body OTPLoginRequest true "Login or email and code"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} util.Response "Invalid OTP code or expired"
// @Failure 429 {object} util.Response
// @Router /api/auth/login-otp [post]
func (c *AuthController) LoginOTP(ctx *gin.Context) {
	var req OTPLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	cred := service.Credentials{Login: req.Login, Email: req.Email}
	res, err := c.AuthService.LoginOTP(util.NewClientInfo(ctx), cred, req.OTPCode)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.respondLoggedIn(ctx, res)
}

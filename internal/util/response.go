package util

import (
	"fmt"
	"learning_center_backend/pkg/hashid"
	"learning_center_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the envelope for plain acknowledgements and for every error.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

// PageResponse is returned by every collection endpoint.
type PageResponse struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

func NewPageResponse(data interface{}, total int64, p Pagination) PageResponse {
	return PageResponse{
		Data:        data,
		Total:       total,
		TotalPages:  p.TotalPages(total),
		CurrentPage: p.Page,
	}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Paginated(c *gin.Context, data interface{}, total int64, p Pagination) {
	c.JSON(http.StatusOK, NewPageResponse(data, total, p))
}

func Message(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: true, Message: message})
}

func Error(c *gin.Context, code int, message string, details ...string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Errors:  details,
	})
}

func Unauthenticated(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Authentication invalid")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Not authorized to access this route")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// BindError answers a failed ShouldBind* call with the translated
// validation messages.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := TranslateValidationErrors(verrs)
		Error(c, http.StatusBadRequest, details[0], details...)
		return
	}
	BadRequest(c, "Invalid request body")
}

// HandleError maps any error returned by a service onto the error envelope.
func HandleError(c *gin.Context, err error) {
	resp := Response{Success: false}
	status := http.StatusInternalServerError

	var appErr *AppError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status()
		resp.Message = appErr.Message
		resp.Errors = appErr.Errors
	case errors.Is(err, hashid.ErrInvalid):
		status = http.StatusBadRequest
		resp.Message = hashid.ErrInvalid.Error()
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		resp.Message = "Resource not found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		status = http.StatusConflict
		resp.Message = "Resource already exists"
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
		resp.Errors = TranslateValidationErrors(verrs)
		resp.Message = resp.Errors[0]
	default:
		resp.Message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		login := ""
		if claims := GetUserFromContext(c); claims != nil {
			login = claims.Login
		}
		logger.Log.Error("Internal server error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		logger.Report(c.Request, err, login)
	}

	if gin.Mode() != gin.ReleaseMode {
		resp.Stack = fmt.Sprintf("%+v", err)
	}

	c.AbortWithStatusJSON(status, resp)
}

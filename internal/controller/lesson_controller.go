package controller

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
	Codec         *hashid.Codec
}

func NewLessonController(lessonService *service.LessonService, codec *hashid.Codec) *LessonController {
	return &LessonController{LessonService: lessonService, Codec: codec}
}

// GetLessons godoc
// @Summary List lessons
// @Description Materials are omitted from the listing
// @Tags Lessons
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.PageResponse{data=[]dto.LessonView}
// @Router /api/lesson [get]
func (c *LessonController) GetLessons(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	lessons, total, err := c.LessonService.List(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, lessons, total, p)
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags Lessons
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.LessonInput true "Lesson"
// @Success 201 {object} dto.LessonView
// @Failure 400 {object} util.Response
// @Router /api/lesson [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	lesson, err := c.LessonService.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, dto.ToLessonView(lesson, c.Codec, true))
}

// GetLesson godoc
// @Summary Get a lesson by slug
// @Tags Lessons
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Lesson slug"
// @Success 200 {object} dto.LessonView
// @Failure 404 {object} util.Response
// @Router /api/lesson/{slug} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.LessonService.GetBySlug(ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToLessonView(lesson, c.Codec, true))
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Description Listed groups and exams gain the lesson; existing links are kept
// @Tags Lessons
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Lesson id"
// @Param   body body service.LessonInput true "Lesson"
// @Success 200 {object} dto.LessonView
// @Router /api/lesson/{hashId} [patch]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	lesson, err := c.LessonService.Update(util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToLessonView(lesson, c.Codec, true))
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags Lessons
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Lesson id"
// @Success 200 {object} util.Response
// @Router /api/lesson/{hashId} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	if err := c.LessonService.Delete(util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Lesson deleted successfully")
}

package controller

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
	Codec       *hashid.Codec
}

func NewExamController(examService *service.ExamService, codec *hashid.Codec) *ExamController {
	return &ExamController{ExamService: examService, Codec: codec}
}

// GetExams godoc
// @Summary List exams
// @Description Questions are omitted, attempts are included
// @Tags Exams
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.PageResponse{data=[]dto.ExamView}
// @Router /api/exam [get]
func (c *ExamController) GetExams(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	exams, total, err := c.ExamService.List(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, exams, total, p)
}

// CreateExam godoc
// @Summary Create an exam
// @Tags Exams
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.ExamInput true "Exam"
// @Success 201 {object} dto.ExamView
// @Failure 400 {object} util.Response
// @Router /api/exam [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req service.ExamInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	exam, err := c.ExamService.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, dto.ToExamView(exam, c.Codec, dto.ExamFull))
}

// SubmitExam godoc
// @Summary Submit answers for grading
// @Description Every submission is stored on the exam and on the user
// @Tags Exams
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.SubmitInput true "Answers"
// @Success 200 {object} service.SubmitResult
// @Failure 404 {object} util.Response "Exam or user not found"
// @Router /api/exam/submit [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	var req service.SubmitInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	res, err := c.ExamService.Submit(req, util.GetUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// GetAttempts godoc
// @Summary List exams that have attempts
// @Tags Exams
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.PageResponse{data=[]dto.ExamView}
// @Router /api/exam/attempts [get]
func (c *ExamController) GetAttempts(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	exams, total, err := c.ExamService.Attempts(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, exams, total, p)
}

// GetExam godoc
// @Summary Get an exam by slug
// @Tags Exams
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Exam slug"
// @Success 200 {object} dto.ExamView
// @Failure 404 {object} util.Response
// @Router /api/exam/{slug} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.ExamService.GetBySlug(ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToExamView(exam, c.Codec, dto.ExamFull))
}

// UpdateExam godoc
// @Summary Update an exam
// @Tags Exams
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Exam id"
// @Param   body body service.ExamInput true "Exam"
// @Success 200 {object} dto.ExamView
// @Router /api/exam/{hashId} [patch]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	var req service.ExamInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	exam, err := c.ExamService.Update(util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToExamView(exam, c.Codec, dto.ExamFull))
}

// DeleteExam godoc
// @Summary Delete an exam
// @Tags Exams
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Exam id"
// @Success 200 {object} util.Response
// @Router /api/exam/{hashId} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	if err := c.ExamService.Delete(util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Exam deleted successfully")
}

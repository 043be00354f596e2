package controller

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CourseController serves courses and the subcourses nested under a course
// slug. Both route trees share the :slug parameter name.
type CourseController struct {
	CourseService *service.CourseService
	Codec         *hashid.Codec
}

func NewCourseController(courseService *service.CourseService, codec *hashid.Codec) *CourseController {
	return &CourseController{CourseService: courseService, Codec: codec}
}

// GetCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce  json
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(5)
// @Success 200 {object} util.PageResponse{data=[]dto.CourseView}
// @Router /api/course [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultCourseLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	courses, total, err := c.CourseService.List(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, courses, total, p)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Courses
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.CourseInput true "Course"
// @Success 201 {object} dto.CourseView
// @Router /api/course [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	course, err := c.CourseService.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, dto.ToCourseView(course, c.Codec))
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags Courses
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Course id"
// @Param   body body service.CourseInput true "Course"
// @Success 200 {object} dto.CourseView
// @Router /api/course/{hashId} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req service.CourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	course, err := c.CourseService.Update(util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToCourseView(course, c.Codec))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Subcourses stay but lose their course link
// @Tags Courses
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "Course id"
// @Success 200 {object} util.Response
// @Router /api/course/{hashId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.Delete(util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Course deleted successfully")
}

// GetCourse godoc
// @Summary Get a course with its subcourses
// @Tags Courses
// @Produce  json
// @Param   slug path string true "Course slug"
// @Success 200 {object} dto.CourseDetailView
// @Failure 404 {object} util.Response
// @Router /api/course/slug/{slug} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	detail, err := c.CourseService.Detail(ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// GetSubCourses godoc
// @Summary List the subcourses of a course
// @Tags Courses
// @Produce  json
// @Param   slug path string true "Course slug"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(5)
// @Success 200 {object} util.PageResponse{data=[]dto.SubCourseView}
// @Router /api/course/slug/{slug}/subcourses [get]
func (c *CourseController) GetSubCourses(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultCourseLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	subs, total, err := c.CourseService.ListSubCourses(ctx.Param("slug"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, subs, total, p)
}

// CreateSubCourse godoc
// @Summary Create a subcourse
// @Tags Courses
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Course slug"
// @Param   body body service.SubCourseInput true "Subcourse"
// @Success 201 {object} dto.SubCourseView
// @Failure 404 {object} util.Response "Parent course not found"
// @Router /api/course/slug/{slug}/subcourses [post]
func (c *CourseController) CreateSubCourse(ctx *gin.Context) {
	var req service.SubCourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sub, err := c.CourseService.CreateSubCourse(ctx.Param("slug"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, dto.ToSubCourseView(sub, c.Codec))
}

// GetSubCourse godoc
// @Summary Get a subcourse
// @Tags Courses
// @Produce  json
// @Param   slug path string true "Course slug"
// @Param   hashId path string true "Subcourse id"
// @Success 200 {object} dto.SubCourseView
// @Router /api/course/slug/{slug}/subcourses/{hashId} [get]
func (c *CourseController) GetSubCourse(ctx *gin.Context) {
	sub, err := c.CourseService.GetSubCourse(ctx.Param("slug"), util.ParamID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToSubCourseView(sub, c.Codec))
}

// UpdateSubCourse godoc
// @Summary Update a subcourse
// @Tags Courses
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Course slug"
// @Param   hashId path string true "Subcourse id"
// @Param   body body service.SubCourseInput true "Subcourse"
// @Success 200 {object} dto.SubCourseView
// @Router /api/course/slug/{slug}/subcourses/{hashId} [patch]
func (c *CourseController) UpdateSubCourse(ctx *gin.Context) {
	var req service.SubCourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sub, err := c.CourseService.UpdateSubCourse(ctx.Param("slug"), util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToSubCourseView(sub, c.Codec))
}

// DeleteSubCourse godoc
// @Summary Delete a subcourse
// @Tags Courses
// @Produce  json
// @Security CookieAuth
// @Param   slug path string true "Course slug"
// @Param   hashId path string true "Subcourse id"
// @Success 200 {object} util.Response
// @Router /api/course/slug/{slug}/subcourses/{hashId} [delete]
func (c *CourseController) DeleteSubCourse(ctx *gin.Context) {
	if err := c.CourseService.DeleteSubCourse(ctx.Param("slug"), util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "Subcourse deleted successfully")
}

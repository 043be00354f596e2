package controller

import (
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DictionaryController returns unpaginated lists for admin pickers and the
// public blog tag cloud.
type DictionaryController struct {
	NewsService   *service.NewsService
	ExamService   *service.ExamService
	LessonService *service.LessonService
	UserService   *service.UserService
	GroupService  *service.GroupService
}

func NewDictionaryController(news *service.NewsService, exams *service.ExamService, lessons *service.LessonService, users *service.UserService, groups *service.GroupService) *DictionaryController {
	return &DictionaryController{
		NewsService:   news,
		ExamService:   exams,
		LessonService: lessons,
		UserService:   users,
		GroupService:  groups,
	}
}

func respond[T any](ctx *gin.Context, data T, err error) {
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// GetBlogTags godoc
// @Summary Distinct news tags
// @Tags Dictionary
// @Produce  json
// @Success 200 {array} string
// @Router /api/dictionary/get-blog-tags [get]
func (c *DictionaryController) GetBlogTags(ctx *gin.Context) {
	tags, err := c.NewsService.Tags()
	respond(ctx, tags, err)
}

// GetExams godoc
// @Summary Every exam
// @Tags Dictionary
// @Produce  json
// @Security CookieAuth
// @Success 200 {array} dto.ExamView
// @Router /api/dictionary/get-exams [get]
func (c *DictionaryController) GetExams(ctx *gin.Context) {
	exams, err := c.ExamService.All()
	respond(ctx, exams, err)
}

// GetLessons godoc
// @Summary Every lesson
// @Tags Dictionary
// @Produce  json
// @Security CookieAuth
// @Success 200 {array} dto.LessonView
// @Router /api/dictionary/get-lessons [get]
func (c *DictionaryController) GetLessons(ctx *gin.Context) {
	lessons, err := c.LessonService.All()
	respond(ctx, lessons, err)
}

// GetUsers godoc
// @Summary Every user
// @Tags Dictionary
// @Produce  json
// @Security CookieAuth
// @Success 200 {array} dto.UserView
// @Router /api/dictionary/get-users [get]
func (c *DictionaryController) GetUsers(ctx *gin.Context) {
	users, err := c.UserService.All()
	respond(ctx, users, err)
}

// GetGroups godoc
// @Summary Every group
// @Tags Dictionary
// @Produce  json
// @Security CookieAuth
// @Success 200 {array} dto.GroupView
// @Router /api/dictionary/get-groups [get]
func (c *DictionaryController) GetGroups(ctx *gin.Context) {
	groups, err := c.GroupService.All()
	respond(ctx, groups, err)
}

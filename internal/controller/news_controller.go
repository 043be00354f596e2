package controller

import (
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewsController backs both the admin news routes and the public blog. The
// blog never exposes ids.
type NewsController struct {
	NewsService *service.NewsService
	Codec       *hashid.Codec
}

func NewNewsController(newsService *service.NewsService, codec *hashid.Codec) *NewsController {
	return &NewsController{NewsService: newsService, Codec: codec}
}

func newsFilter(ctx *gin.Context) repository.NewsFilter {
	return repository.NewsFilter{Title: ctx.Query("title"), Tag: ctx.Query("tags")}
}

func (c *NewsController) list(ctx *gin.Context, codec *hashid.Codec) {
	p, err := util.ParsePagination(ctx, util.DefaultNewsLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	news, total, err := c.NewsService.List(newsFilter(ctx), p, codec)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, news, total, p)
}

// GetNews godoc
// @Summary List news
// @Tags News
// @Produce  json
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(5)
// @Param   title query string false "Title contains, any language"
// @Param   tags query string false "Tag"
// @Success 200 {object} util.PageResponse{data=[]dto.NewsView}
// @Router /api/news [get]
func (c *NewsController) GetNews(ctx *gin.Context) {
	c.list(ctx, c.Codec)
}

// GetBlog godoc
// @Summary List blog posts
// @Tags Blog
// @Produce  json
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(5)
// @Param   title query string false "Title contains, any language"
// @Param   tags query string false "Tag"
// @Success 200 {object} util.PageResponse{data=[]dto.NewsView}
// @Router /api/blog [get]
func (c *NewsController) GetBlog(ctx *gin.Context) {
	c.list(ctx, nil)
}

// CreateNews godoc
// @Summary Create a news item
// @Tags News
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.NewsInput true "News"
// @Success 201 {object} dto.NewsView
// @Router /api/news [post]
func (c *NewsController) CreateNews(ctx *gin.Context) {
	var req service.NewsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	news, err := c.NewsService.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, dto.ToNewsView(news, c.Codec))
}

// UpdateNews godoc
// @Summary Update a news item
// @Tags News
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "News id"
// @Param   body body service.NewsInput true "News"
// @Success 200 {object} dto.NewsView
// @Router /api/news/{hashId} [patch]
func (c *NewsController) UpdateNews(ctx *gin.Context) {
	var req service.NewsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	news, err := c.NewsService.Update(util.ParamID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToNewsView(news, c.Codec))
}

// DeleteNews godoc
// @Summary Delete a news item
// @Tags News
// @Produce  json
// @Security CookieAuth
// @Param   hashId path string true "News id"
// @Success 200 {object} util.Response
// @Router /api/news/{hashId} [delete]
func (c *NewsController) DeleteNews(ctx *gin.Context) {
	if err := c.NewsService.Delete(util.ParamID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, http.StatusOK, "News deleted successfully")
}

// GetNewsBySlug godoc
// @Summary Get a news item by slug
// @Tags News
// @Produce  json
// @Param   slug path string true "News slug"
// @Success 200 {object} dto.NewsView
// @Failure 404 {object} util.Response
// @Router /api/news/slug/{slug} [get]
func (c *NewsController) GetNewsBySlug(ctx *gin.Context) {
	news, err := c.NewsService.GetBySlug(ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToNewsView(news, c.Codec))
}

// GetBlogPost godoc
// @Summary Get a blog post by slug
// @Tags Blog
// @Produce  json
// @Param   slug path string true "Post slug"
// @Success 200 {object} dto.NewsView
// @Failure 404 {object} util.Response
// @Router /api/blog/{slug} [get]
func (c *NewsController) GetBlogPost(ctx *gin.Context) {
	news, err := c.NewsService.GetBySlug(ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dto.ToNewsView(news, nil))
}

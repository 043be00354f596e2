package controller

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController serves the homepage, faq and about-us singletons.
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// GetHomepage godoc
// @Summary Get the homepage blocks
// @Tags Content
// @Produce  json
// @Success 200 {object} dto.HomepageView
// @Router /api/homepage [get]
func (c *ContentController) GetHomepage(ctx *gin.Context) {
	view, err := c.ContentService.Homepage()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateHomepage godoc
// @Summary Replace the homepage blocks
// @Tags Content
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.HomepageInput true "Homepage"
// @Success 200 {object} dto.HomepageView
// @Router /api/homepage [patch]
func (c *ContentController) UpdateHomepage(ctx *gin.Context) {
	var req service.HomepageInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	view, err := c.ContentService.SaveHomepage(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GetFAQ godoc
// @Summary Get the faq items
// @Tags Content
// @Produce  json
// @Success 200 {array} model.FAQItem
// @Router /api/faq [get]
func (c *ContentController) GetFAQ(ctx *gin.Context) {
	items, err := c.ContentService.FAQ()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// UpdateFAQ godoc
// @Summary Replace the faq items
// @Tags Content
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body []model.FAQItem true "Items"
// @Success 200 {array} model.FAQItem
// @Router /api/faq [patch]
func (c *ContentController) UpdateFAQ(ctx *gin.Context) {
	var req []model.FAQItem
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	items, err := c.ContentService.SaveFAQ(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// GetAboutUs godoc
// @Summary Get the about-us page
// @Tags Content
// @Produce  json
// @Success 200 {object} dto.AboutUsView
// @Router /api/about-us [get]
func (c *ContentController) GetAboutUs(ctx *gin.Context) {
	view, err := c.ContentService.AboutUs()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateAboutUs godoc
// @Summary Replace the about-us page
// @Tags Content
// @Accept  json
// @Produce  json
// @Security CookieAuth
// @Param   body body service.AboutUsInput true "About us"
// @Success 200 {object} dto.AboutUsView
// @Router /api/about-us [patch]
func (c *ContentController) UpdateAboutUs(ctx *gin.Context) {
	var req service.AboutUsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	view, err := c.ContentService.SaveAboutUs(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

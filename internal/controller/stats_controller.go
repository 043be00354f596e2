package controller

import (
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// GetStats godoc
// @Summary List request and login statistics
// @Description With export=pdf or export=html the page is rendered as a document instead
// @Tags Stats
// @Produce  json
// @Produce  application/pdf
// @Produce  text/html
// @Security CookieAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   login query string false "Login"
// @Param   method query string false "HTTP method"
// @Param   ip query string false "Client IP"
// @Param   from query string false "From, RFC3339 or 2006-01-02"
// @Param   to query string false "To, RFC3339 or 2006-01-02"
// @Param   export query string false "pdf or html"
// @Success 200 {object} util.PageResponse{data=[]dto.StatsLogView}
// @Failure 400 {object} util.Response
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	p, err := util.ParsePagination(ctx, util.DefaultStatsLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	q := service.StatsQuery{
		Login:  ctx.Query("login"),
		Method: ctx.Query("method"),
		IP:     ctx.Query("ip"),
		From:   ctx.Query("from"),
		To:     ctx.Query("to"),
	}

	if format := ctx.Query("export"); format != "" {
		doc, err := c.StatsService.Export(format, q, p)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		if format == service.ExportPDF {
			ctx.Header("Content-Disposition", `attachment; filename="stats-log.pdf"`)
			ctx.Data(http.StatusOK, util.MimePDF, doc)
			return
		}
		ctx.Data(http.StatusOK, util.MimeHTML, doc)
		return
	}

	logs, total, err := c.StatsService.List(q, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paginated(ctx, logs, total, p)
}

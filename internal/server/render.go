package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/internal/observability/metrics"
	"github.com/smallbiznis/paperpress/internal/orgcontext"
	"github.com/smallbiznis/paperpress/internal/render"
	"github.com/smallbiznis/paperpress/internal/render/preview"
)

type previewRequest struct {
	Design      json.RawMessage     `json:"design"`
	Document    render.DocumentData `json:"document"`
	ViewMode    string              `json:"view_mode"`
	ZoomPercent int                 `json:"zoom_percent"`
}

type exportRequest struct {
	Document render.DocumentData `json:"document"`
}

// @Summary      Preview Design
// @Description  Render a live HTML preview of a design config without persisting it
// @Tags         render
// @Accept       json
// @Produce      html
// @Param        request body previewRequest true "Preview Request"
// @Success      200  {string}  string
// @Router       /templates/preview [post]
func (s *Server) PreviewDesign(c *gin.Context) {
	if !s.previewRate.Allow(orgcontext.OrgIDFromContext(c.Request.Context()).String()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Design) == 0 {
		AbortWithError(c, newValidationError("design", "required", "design config is required"))
		return
	}

	cfg, _, err := design.Decode(req.Design)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	tree, err := render.BuildLayout(cfg, req.Document)
	if err != nil {
		metrics.Render().ObserveRender("preview", "invalid", time.Since(start))
		AbortWithError(c, err)
		return
	}

	html, err := s.previewer.RenderHTML(tree, preview.Options{
		ViewMode:    preview.ViewMode(req.ViewMode),
		ZoomPercent: req.ZoomPercent,
	})
	if err != nil {
		metrics.Render().ObserveRender("preview", "failed", time.Since(start))
		AbortWithError(c, err)
		return
	}

	metrics.Render().ObserveRender("preview", "success", time.Since(start))
	metrics.Render().ObserveLayoutBlocks(len(tree.Blocks))
	c.Header("ETag", `"`+render.Fingerprint(cfg, req.Document, req.ViewMode, strconv.Itoa(req.ZoomPercent))+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// @Summary      Export Template PDF
// @Description  Render a stored template with document data as a PDF
// @Tags         render
// @Accept       json
// @Produce      application/pdf
// @Param        id       path  string         true  "Template ID"
// @Param        request  body  exportRequest  true  "Export Request"
// @Success      200  {string}  binary
// @Router       /templates/{id}/export [post]
func (s *Server) ExportTemplatePDF(c *gin.Context) {
	if !s.previewRate.Allow(orgcontext.OrgIDFromContext(c.Request.Context()).String()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tmpl, err := s.templateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	tree, err := render.BuildLayout(tmpl.Design, req.Document)
	if err != nil {
		metrics.Render().ObserveRender("pdf", "invalid", time.Since(start))
		AbortWithError(c, err)
		return
	}

	pdf, err := s.exporter.RenderPDF(tree)
	if err != nil {
		metrics.Render().ObserveRender("pdf", "failed", time.Since(start))
		AbortWithError(c, err)
		return
	}

	metrics.Render().ObserveRender("pdf", "success", time.Since(start))
	c.Header("Content-Disposition", `attachment; filename="invoice.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

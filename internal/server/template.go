package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
)

// @Summary      List Templates
// @Description  List invoice templates for the calling organization
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        search              query  string  false  "Search"
// @Param        tag                 query  string  false  "Tag"
// @Param        is_system_template  query  bool    false  "System templates only"
// @Param        sort_by             query  string  false  "Sort By"
// @Param        order_by            query  string  false  "Order By"
// @Param        page                query  int     false  "Page"
// @Param        page_size           query  int     false  "Page Size"
// @Success      200  {object}  templatedomain.ListResponse
// @Router       /templates [get]
func (s *Server) ListTemplates(c *gin.Context) {
	var req templatedomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Template
// @Description  Get a template by ID
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id} [get]
func (s *Server) GetTemplate(c *gin.Context) {
	resp, err := s.templateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Template
// @Description  Create a new invoice template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body templatedomain.CreateRequest true "Create Template Request"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates [post]
func (s *Server) CreateTemplate(c *gin.Context) {
	var req templatedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Template
// @Description  Update an existing template; system templates are immutable
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Template ID"
// @Param        request  body  templatedomain.UpdateRequest  true  "Update Template Request"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id} [patch]
func (s *Server) UpdateTemplate(c *gin.Context) {
	var req templatedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.templateSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Template
// @Description  Delete a template; the sole default cannot be removed
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  map[string]string
// @Router       /templates/{id} [delete]
func (s *Server) DeleteTemplate(c *gin.Context) {
	if err := s.templateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Duplicate Template
// @Description  Create an independent copy of a template
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id}/duplicate [post]
func (s *Server) DuplicateTemplate(c *gin.Context) {
	resp, err := s.templateSvc.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Set Default Template
// @Description  Mark a template as the organization default
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id}/default [post]
func (s *Server) SetDefaultTemplate(c *gin.Context) {
	resp, err := s.templateSvc.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Record Template Use
// @Description  Record that an invoice was created from the template
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id}/use [post]
func (s *Server) UseTemplate(c *gin.Context) {
	resp, err := s.templateSvc.RecordUse(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

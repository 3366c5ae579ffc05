package handler

import (
	integrationapp "github.com/dukkan/backoffice/internal/application/integration"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// WebhookSourceHandler manages webhook source-to-product bindings
type WebhookSourceHandler struct {
	BaseHandler
	sourceService *integrationapp.WebhookSourceService
}

// NewWebhookSourceHandler creates a new WebhookSourceHandler
func NewWebhookSourceHandler(sourceService *integrationapp.WebhookSourceService) *WebhookSourceHandler {
	return &WebhookSourceHandler{sourceService: sourceService}
}

// WebhookSourceRequest creates or rebinds a source
type WebhookSourceRequest struct {
	Code        string `json:"code" binding:"required"`
	Product     string `json:"product" binding:"required"`
	Description string `json:"description"`
}

// Create godoc
// @Summary      Create a webhook source
// @Description  Binds a source code to a product; intake requests carrying the code get that product regardless of their payload.
// @Tags         webhook-sources
// @Accept       json
// @Produce      json
// @Param        request body WebhookSourceRequest true "Source fields"
// @Success      201 {object} dto.Response{data=integrationapp.WebhookSourceResponse}
// @Failure      409 {object} dto.Response
// @Router       /webhook-sources [post]
func (h *WebhookSourceHandler) Create(c *gin.Context) {
	var req WebhookSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Code and product are required")
		return
	}

	source, err := h.sourceService.Create(c.Request.Context(), integrationapp.WebhookSourceRequest{
		Code:        req.Code,
		Product:     req.Product,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, source)
}

// List godoc
// @Summary      List webhook sources
// @Tags         webhook-sources
// @Produce      json
// @Success      200 {object} dto.Response{data=[]integrationapp.WebhookSourceResponse}
// @Router       /webhook-sources [get]
func (h *WebhookSourceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	page, err := h.sourceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Update godoc
// @Summary      Update a webhook source
// @Tags         webhook-sources
// @Accept       json
// @Produce      json
// @Param        id path string true "Source ID"
// @Param        request body WebhookSourceRequest true "Source fields"
// @Success      200 {object} dto.Response{data=integrationapp.WebhookSourceResponse}
// @Router       /webhook-sources/{id} [put]
func (h *WebhookSourceHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req WebhookSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Code and product are required")
		return
	}

	source, err := h.sourceService.Update(c.Request.Context(), id, integrationapp.WebhookSourceRequest{
		Code:        req.Code,
		Product:     req.Product,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, source)
}

// Delete godoc
// @Summary      Delete a webhook source
// @Tags         webhook-sources
// @Param        id path string true "Source ID"
// @Success      204 "No Content"
// @Router       /webhook-sources/{id} [delete]
func (h *WebhookSourceHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.sourceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"time"

	tradeapp "github.com/dukkan/backoffice/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order listing and back-office edits
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrdersRequest carries the multi-value order filters. Repeated query
// parameters express the include/exclude sets, e.g.
// ?status=onaylandi&status=kargoda&exclude_product=lamba
type ListOrdersRequest struct {
	Status         []string `form:"status"`
	ExcludeStatus  []string `form:"exclude_status"`
	Product        []string `form:"product"`
	ExcludeProduct []string `form:"exclude_product"`
	Tag            []string `form:"tag"`
	Search         string   `form:"search"`
	StartDate      string   `form:"start_date"`
	EndDate        string   `form:"end_date"`
	Page           int      `form:"page"`
	PageSize       int      `form:"page_size"`
}

// UpdateOrderStatusRequest sets a new order status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderTagsRequest replaces the order's tag set
type UpdateOrderTagsRequest struct {
	Tags []string `json:"tags"`
}

// UpdateOrderRequest edits customer and pricing fields of an order
type UpdateOrderRequest struct {
	Name          string  `json:"name" binding:"required"`
	Surname       string  `json:"surname"`
	Phone         string  `json:"phone" binding:"required"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	District      string  `json:"district"`
	PaymentMethod string  `json:"payment_method"`
	BasePrice     float64 `json:"base_price"`
	ShippingCost  float64 `json:"shipping_cost"`
	TotalPrice    float64 `json:"total_price"`
}

// List godoc
// @Summary      List orders
// @Description  Lists orders newest first with include/exclude filters on status, product and tag, free-text search, and a date range.
// @Tags         orders
// @Produce      json
// @Param        status query []string false "Statuses to include"
// @Param        exclude_status query []string false "Statuses to exclude"
// @Param        product query []string false "Products to include"
// @Param        exclude_product query []string false "Products to exclude"
// @Param        tag query []string false "Tags to match"
// @Param        search query string false "Free-text search on name, surname, phone"
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date query string false "Range end (YYYY-MM-DD), inclusive"
// @Param        page query int false "Page (1-based)"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	query := tradeapp.ListOrdersQuery{
		Statuses:        req.Status,
		ExcludeStatuses: req.ExcludeStatus,
		Products:        req.Product,
		ExcludeProducts: req.ExcludeProduct,
		Tags:            req.Tag,
		Search:          req.Search,
		Page:            req.Page,
		PageSize:        req.PageSize,
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		query.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// inclusive end day, exclusive bound
		endBound := end.Add(24 * time.Hour)
		query.EndDate = &endBound
	}

	page, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Update godoc
// @Summary      Edit an order
// @Description  Manual back-office edit of customer and pricing fields. Phone format is not re-validated here; webhook intake is the only gate.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateOrderRequest true "Order fields"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, tradeapp.UpdateOrderRequest{
		Name:          req.Name,
		Surname:       req.Surname,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		District:      req.District,
		PaymentMethod: req.PaymentMethod,
		BasePrice:     req.BasePrice,
		ShippingCost:  req.ShippingCost,
		TotalPrice:    req.TotalPrice,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Status is required")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateTags godoc
// @Summary      Replace order tags
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateOrderTagsRequest true "Tag set"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Router       /orders/{id}/tags [put]
func (h *OrderHandler) UpdateTags(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateOrderTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateTags(c.Request.Context(), id, req.Tags)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Description  Removes the order. A confirmed order's units go back to stock in the same transaction.
// @Tags         orders
// @Param        id path string true "Order ID"
// @Success      204 "No Content"
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"time"

	tradeapp "github.com/dukkan/backoffice/internal/application/trade"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseHandler handles supplier purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// CreatePurchaseRequest records a new in-transit purchase
type CreatePurchaseRequest struct {
	SupplierID   string  `json:"supplier_id" binding:"required,uuid"`
	ProductID    string  `json:"product_id" binding:"required,uuid"`
	Amount       int     `json:"amount" binding:"required,min=1"`
	UnitPrice    float64 `json:"unit_price" binding:"min=0"`
	ShippingCost float64 `json:"shipping_cost" binding:"min=0"`
	Date         string  `json:"date"`
}

// Create godoc
// @Summary      Record a purchase
// @Description  Creates an in-transit purchase. The total price is computed and frozen at write time.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body CreatePurchaseRequest true "Purchase fields"
// @Success      201 {object} dto.Response{data=tradeapp.PurchaseResponse}
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "supplier_id, product_id and a positive amount are required")
		return
	}

	supplierID, _ := uuid.Parse(req.SupplierID)
	productID, _ := uuid.Parse(req.ProductID)

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), tradeapp.CreatePurchaseRequest{
		SupplierID:   supplierID,
		ProductID:    productID,
		Amount:       req.Amount,
		UnitPrice:    req.UnitPrice,
		ShippingCost: req.ShippingCost,
		Date:         date,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, purchase)
}

// List godoc
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Param        page query int false "Page (1-based)"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]tradeapp.PurchaseResponse}
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
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

	page, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Get godoc
// @Summary      Get a purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseResponse}
// @Failure      404 {object} dto.Response
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Receive godoc
// @Summary      Receive a purchase into stock
// @Description  Marks the purchase received and increments the product's stock in the same transaction. Receiving twice is rejected.
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response{data=tradeapp.PurchaseResponse}
// @Failure      422 {object} dto.Response
// @Router       /purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete godoc
// @Summary      Delete a purchase
// @Description  Removes the purchase. A received purchase's units are taken back out of stock in the same transaction.
// @Tags         purchases
// @Param        id path string true "Purchase ID"
// @Success      204 "No Content"
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

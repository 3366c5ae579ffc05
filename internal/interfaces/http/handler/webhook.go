package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	intakeapp "github.com/dukkan/backoffice/internal/application/intake"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// WebhookHandler receives order payloads from landing-page form providers
type WebhookHandler struct {
	BaseHandler
	intakeService *intakeapp.IntakeService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(intakeService *intakeapp.IntakeService) *WebhookHandler {
	return &WebhookHandler{intakeService: intakeService}
}

// WebhookOrderRequest is the inbound order payload. Form providers are
// inconsistent about numeric types, so quantity arrives as a raw JSON value
// and is parsed here.
type WebhookOrderRequest struct {
	Name            string       `json:"name"`
	Surname         string       `json:"surname"`
	Phone           string       `json:"phone"`
	Address         string       `json:"address"`
	City            string       `json:"city"`
	District        string       `json:"district"`
	Product         string       `json:"product"`
	PackageID       flexQuantity `json:"package_id"`
	PaymentMethod   string       `json:"payment_method"`
	Timestamp       string       `json:"timestamp"`
	ABTestVariation string       `json:"ab_test_variation"`
	OrderSource     string       `json:"order_source"`
	TotalPrice      float64      `json:"total_price"`
	BasePrice       float64      `json:"base_price"`
	ShippingCost    float64      `json:"shipping_cost"`
	PaymentStatus   string       `json:"payment_status"`
}

// CreateOrderResponse carries the created order id back to the form provider
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder godoc
// @Summary      Receive an order from a webhook
// @Description  Validates the payload, deducts stock and stores the order. The optional source query parameter selects a webhook-source binding whose product overrides the declared one.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        source query string false "Webhook source code"
// @Param        request body WebhookOrderRequest true "Order payload"
// @Success      200 {object} dto.Response{data=CreateOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /webhook/orders [post]
func (h *WebhookHandler) CreateOrder(c *gin.Context) {
	var req WebhookOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	quantity, err := parseQuantity(req.PackageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.intakeService.CreateOrder(c.Request.Context(), intakeapp.CreateOrderRequest{
		Name:          req.Name,
		Surname:       req.Surname,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		District:      req.District,
		Product:       req.Product,
		Quantity:      quantity,
		PaymentMethod: req.PaymentMethod,
		ABVariant:     req.ABTestVariation,
		OrderSource:   req.OrderSource,
		TotalPrice:    req.TotalPrice,
		BasePrice:     req.BasePrice,
		ShippingCost:  req.ShippingCost,
		SourceCode:    c.Query("source"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CreateOrderResponse{OrderID: order.ID.String()})
}

// flexQuantity accepts the quantity as either a JSON number or a string,
// since form providers send both.
type flexQuantity string

func (q *flexQuantity) UnmarshalJSON(data []byte) error {
	value := strings.TrimSpace(string(data))
	if value == "null" {
		*q = ""
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*q = flexQuantity(strings.TrimSpace(asString))
		return nil
	}
	*q = flexQuantity(value)
	return nil
}

// parseQuantity reads the package_id value. An absent value maps to zero so
// the intake validation reports it as a missing field; a present but
// unparseable value is an invalid quantity.
func parseQuantity(raw flexQuantity) (int, error) {
	value := string(raw)
	if value == "" {
		return 0, nil
	}
	quantity, err := strconv.Atoi(value)
	if err != nil {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Package quantity must be an integer")
	}
	return quantity, nil
}

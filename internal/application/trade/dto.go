package trade

import (
	"time"

	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
)

// OrderResponse is the outward representation of an order
type OrderResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	District      string    `json:"district"`
	Product       string    `json:"product"`
	PackageCount  int       `json:"package_count"`
	PaymentMethod string    `json:"payment_method"`
	BasePrice     float64   `json:"base_price"`
	ShippingCost  float64   `json:"shipping_cost"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	ReturnCost    *float64  `json:"return_cost,omitempty"`
	Tags          []string  `json:"tags"`
	OrderSource   string    `json:"order_source,omitempty"`
	ABVariant     string    `json:"ab_variant,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToOrderResponse converts a domain order to its response representation
func ToOrderResponse(order *trade.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		Name:          order.Name,
		Surname:       order.Surname,
		Phone:         order.Phone,
		Address:       order.Address,
		City:          order.City,
		District:      order.District,
		Product:       order.ProductName,
		PackageCount:  order.PackageCount,
		PaymentMethod: order.PaymentMethod,
		BasePrice:     order.BasePrice.InexactFloat64(),
		ShippingCost:  order.ShippingCost.InexactFloat64(),
		TotalPrice:    order.TotalPrice.InexactFloat64(),
		Status:        order.Status.String(),
		Tags:          order.Tags,
		OrderSource:   order.OrderSource,
		ABVariant:     order.ABVariant,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if order.ReturnCost != nil {
		cost := order.ReturnCost.InexactFloat64()
		resp.ReturnCost = &cost
	}
	return resp
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// PurchaseResponse is the outward representation of a purchase
type PurchaseResponse struct {
	ID           uuid.UUID `json:"id"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	ProductID    uuid.UUID `json:"product_id"`
	Amount       int       `json:"amount"`
	UnitPrice    float64   `json:"unit_price"`
	ShippingCost float64   `json:"shipping_cost"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToPurchaseResponse converts a domain purchase to its response representation
func ToPurchaseResponse(purchase *trade.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           purchase.ID,
		SupplierID:   purchase.SupplierID,
		ProductID:    purchase.ProductID,
		Amount:       purchase.Amount,
		UnitPrice:    purchase.UnitPrice.InexactFloat64(),
		ShippingCost: purchase.ShippingCost.InexactFloat64(),
		TotalPrice:   purchase.TotalPrice.InexactFloat64(),
		Status:       purchase.Status.String(),
		Date:         purchase.Date,
		CreatedAt:    purchase.CreatedAt,
	}
}

// ToPurchaseResponses converts a slice of domain purchases
func ToPurchaseResponses(purchases []trade.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses
}

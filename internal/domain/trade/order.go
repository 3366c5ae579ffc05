package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukkan/backoffice/internal/domain/catalog"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusAwaitingConfirmation OrderStatus = "onay_bekliyor"
	OrderStatusConfirmed            OrderStatus = "onaylandi"
	OrderStatusShipped              OrderStatus = "kargoda"
	OrderStatusReturned             OrderStatus = "iade"
	OrderStatusCancelled            OrderStatus = "iptal"
)

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusAwaitingConfirmation, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusReturned, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// AllOrderStatuses returns every known order status
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusAwaitingConfirmation,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusReturned,
		OrderStatusCancelled,
	}
}

// Order represents a customer order.
// The product reference is a free-text name matched through
// catalog.NormalizeName, not a foreign key. The intended lifecycle is
// onay_bekliyor -> onaylandi -> kargoda, with iade and iptal as exits, but
// SetStatus deliberately accepts any transition: operators correct orders by
// hand and the workflow must never wedge on a stale state.
type Order struct {
	shared.BaseEntity
	Name          string
	Surname       string
	Phone         string
	Address       string
	City          string
	District      string
	ProductName   string
	ProductKey    string `gorm:"index"`
	PackageCount  int
	PaymentMethod string
	BasePrice     decimal.Decimal
	ShippingCost  decimal.Decimal
	TotalPrice    decimal.Decimal
	Status        OrderStatus
	ReturnCost    *decimal.Decimal
	Tags          []string `gorm:"serializer:json"`
	OrderSource   string
	ABVariant     string
}

// NewOrder creates a new order in the awaiting-confirmation state
func NewOrder(name, surname, phone, productName string, packageCount int) (*Order, error) {
	if missing := missingIntakeFields(name, phone, productName, packageCount); len(missing) > 0 {
		return nil, NewMissingFieldsError(missing)
	}
	if !ValidIntakePhone(phone) {
		return nil, ErrInvalidPhoneFormat
	}
	if packageCount < 1 {
		return nil, ErrInvalidPackageCount
	}

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Surname:      surname,
		Phone:        phone,
		ProductName:  productName,
		ProductKey:   catalog.NormalizeName(productName),
		PackageCount: packageCount,
		BasePrice:    decimal.Zero,
		ShippingCost: decimal.Zero,
		TotalPrice:   decimal.Zero,
		Status:       OrderStatusAwaitingConfirmation,
		Tags:         []string{},
	}, nil
}

// Intake validation errors
var (
	ErrInvalidPhoneFormat  = shared.NewDomainError("INVALID_PHONE", "Phone must be 10 digits starting with 5")
	ErrInvalidPackageCount = shared.NewDomainError("INVALID_QUANTITY", "Package quantity must be an integer of at least 1")
)

// NewMissingFieldsError builds a validation error naming each absent field
func NewMissingFieldsError(fields []string) *shared.DomainError {
	return shared.NewDomainError("MISSING_FIELDS",
		fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")))
}

func missingIntakeFields(name, phone, productName string, packageCount int) []string {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(productName) == "" {
		missing = append(missing, "product")
	}
	if packageCount == 0 {
		missing = append(missing, "package_id")
	}
	return missing
}

// SetAddress sets the delivery address fields
func (o *Order) SetAddress(address, city, district string) {
	o.Address = address
	o.City = city
	o.District = district
	o.UpdatedAt = time.Now()
}

// SetPricing sets the monetary fields. They are independent figures as
// reported by the storefront; base + shipping is not forced to equal total.
func (o *Order) SetPricing(basePrice, shippingCost, totalPrice decimal.Decimal) {
	o.BasePrice = basePrice
	o.ShippingCost = shippingCost
	o.TotalPrice = totalPrice
	o.UpdatedAt = time.Now()
}

// SetProvenance records where the order came from
func (o *Order) SetProvenance(orderSource, abVariant string) {
	o.OrderSource = orderSource
	o.ABVariant = abVariant
	o.UpdatedAt = time.Now()
}

// SetPaymentMethod records the declared payment method
func (o *Order) SetPaymentMethod(method string) {
	o.PaymentMethod = method
	o.UpdatedAt = time.Now()
}

// SetStatus moves the order to the given status. Any transition is accepted.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// MarkReturned sets the returned status and records the computed return cost
func (o *Order) MarkReturned(returnCost decimal.Decimal) {
	o.Status = OrderStatusReturned
	o.ReturnCost = &returnCost
	o.UpdatedAt = time.Now()
}

// SetTags replaces the tag set
func (o *Order) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	o.Tags = tags
	o.UpdatedAt = time.Now()
}

// HasTag reports whether the order carries the given tag
func (o *Order) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsConfirmed returns true if the order counts toward net turnover
func (o *Order) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}

// IsReturned returns true if the order has been returned
func (o *Order) IsReturned() bool {
	return o.Status == OrderStatusReturned
}

// MatchesProduct reports whether the order references the given product name
func (o *Order) MatchesProduct(productName string) bool {
	return o.ProductKey == catalog.NormalizeName(productName)
}

// SetProduct changes the referenced product, keeping the join key in sync
func (o *Order) SetProduct(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	o.ProductName = productName
	o.ProductKey = catalog.NormalizeName(productName)
	o.UpdatedAt = time.Now()
	return nil
}

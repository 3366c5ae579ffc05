package trade

import "fmt"

// IntakeStage identifies which step of the intake transaction failed.
// The webhook response surfaces it so a storefront outage can be told apart
// from a database one without reading server logs.
type IntakeStage string

const (
	IntakeStageProductLookup IntakeStage = "product_lookup"
	IntakeStageStockUpdate   IntakeStage = "stock_update"
	IntakeStageOrderCreate   IntakeStage = "order_create"
)

// IntakeError wraps a datastore failure with the intake stage it occurred in
type IntakeError struct {
	Stage IntakeStage
	Err   error
}

// Error implements the error interface
func (e *IntakeError) Error() string {
	switch e.Stage {
	case IntakeStageProductLookup:
		return fmt.Sprintf("product lookup failed: %v", e.Err)
	case IntakeStageStockUpdate:
		return fmt.Sprintf("stock update failed: %v", e.Err)
	case IntakeStageOrderCreate:
		return fmt.Sprintf("order creation failed: %v", e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying datastore error
func (e *IntakeError) Unwrap() error {
	return e.Err
}

// NewIntakeError wraps err with its intake stage
func NewIntakeError(stage IntakeStage, err error) *IntakeError {
	return &IntakeError{Stage: stage, Err: err}
}

package handler

import (
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Call once at startup, before routes are served.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gsmphone", validateGSMPhone)
	}
}

// validateGSMPhone accepts the local 10-digit mobile format used at intake
func validateGSMPhone(fl validator.FieldLevel) bool {
	return trade.ValidIntakePhone(fl.Field().String())
}

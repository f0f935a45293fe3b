package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// registerCustomValidations adds domain validations to gin's binding
// validator so request DTOs can reference them in binding tags.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("beneficiary", func(fl validator.FieldLevel) bool {
		return domain.BeneficiaryAccount(fl.Field().String()).IsValid()
	})
}

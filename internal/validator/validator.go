// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendtrack/internal/forms"
	"spendtrack/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_date", validateExpenseDate)
		_ = v.RegisterValidation("amount_input", validateAmountInput)
	}
}

// validateExpenseDate accepts calendar days in strict YYYY-MM-DD form.
func validateExpenseDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return false
	}
	// Reject forms time.Parse normalizes, like 2024-3-1.
	return models.FormatDate(t) == value
}

// validateAmountInput applies the same character filter the expense form
// applies at entry time: digits with at most one decimal point.
func validateAmountInput(fl validator.FieldLevel) bool {
	return forms.AmountInputAllowed(fl.Field().String())
}

package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kopitoko/backend/internal/domain/shipping"
)

// SetupValidator registers custom binding tags with gin's validator.
// The `courier` tag accepts only supported courier codes.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("courier", func(fl validator.FieldLevel) bool {
			return shipping.IsSupported(fl.Field().String())
		})
	}
}

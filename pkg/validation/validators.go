package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-cvbuilder-backend/internal/domain"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("cv_template", CVTemplate)
	_ = v.RegisterValidation("export_format", ExportFormatTag)
	_ = v.RegisterValidation("color_preset", ColorPresetTag)
}

// RegisterGinValidators wires the custom validators into gin's binding
// engine so `binding:"..."` tags in request DTOs can use them.
func RegisterGinValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// CVTemplate validates that a string names a known CV template.
// Premium gating is enforced by the CV handler, not here.
func CVTemplate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return domain.TemplateName(val).Valid()
}

// ExportFormatTag validates that a string names a supported export format
func ExportFormatTag(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return domain.ExportFormat(val).Valid()
}

// ColorPresetTag validates that a string names a built-in color preset
func ColorPresetTag(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, ok := domain.ColorPresetByID(val)
	return ok
}

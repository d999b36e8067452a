package domain

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance for entity construction. Custom validators cover
// the rules struct tags cannot express directly.
var validate *validator.Validate

var (
	productNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	versionRe     = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

func init() {
	validate = validator.New()

	// product_name: alphanumerics, underscore, hyphen only.
	_ = validate.RegisterValidation("product_name", func(fl validator.FieldLevel) bool {
		return productNameRe.MatchString(fl.Field().String())
	})

	// semver_core: strict MAJOR.MINOR.PATCH, no pre-release or build suffix.
	_ = validate.RegisterValidation("semver_core", func(fl validator.FieldLevel) bool {
		return versionRe.MatchString(fl.Field().String())
	})
}

// validateStruct runs the shared validator and converts tag failures into a
// domain ValidationError so callers never see validator internals.
func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			f := errs[0]
			return ErrValidation("field %q failed validation rule %q", f.Field(), f.Tag())
		}
		return ErrValidation("%v", err)
	}
	return nil
}

package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var nikRe = regexp.MustCompile(`^[0-9]{16}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	// no_ktp: Indonesian national id, exactly 16 digits.
	_ = v.RegisterValidation("nik", func(fl validator.FieldLevel) bool {
		return nikRe.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sefazor/eventos-backend/internal/models"
)

// Same character set Django accepts for usernames.
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Custom validations
	v.RegisterValidation("username", validateUsername)

	return &Validator{
		validate: v,
	}
}

// Struct validates s and returns a *models.ValidationError describing every failing field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &models.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), "validation."+fe.Tag())
	}
	return verr
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

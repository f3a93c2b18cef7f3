package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var employeeCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-]{1,19}$`)

func validateEmployeeCode(fl validator.FieldLevel) bool {
	return employeeCodeRegex.MatchString(fl.Field().String())
}

func validateNameWithSpecialChars(fl validator.FieldLevel) bool {
	regex := regexp.MustCompile(`^[\p{L}'\- ]+$`)
	return regex.MatchString(fl.Field().String())
}

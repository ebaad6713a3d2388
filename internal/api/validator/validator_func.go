package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	// Positive decimal with at most two fraction digits, e.g. "30.00".
	amountRegex = `^\d+(\.\d{1,2})?$`
)

const (
	AmountTag = "amount"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag: ValidateAmount,
}

func ValidateAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()
	return regexp.MustCompile(amountRegex).MatchString(amount)
}

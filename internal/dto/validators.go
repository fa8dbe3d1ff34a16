package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PositiveDecimal is a validator.Func for the "positivedecimal" binding tag.
// It accepts decimal.Decimal fields that are strictly positive with at most
// two decimal places, the precision of stored balances.
func PositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive() && d.Exponent() >= -2
}

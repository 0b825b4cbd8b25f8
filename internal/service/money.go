package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money columns are numeric(12,2).
const moneyScale = 2

var moneyLimit = decimal.New(1, 12-moneyScale)

// checkMoney rejects amounts a money column cannot hold exactly. With
// allowRounding, fractions of a cent pass and the caller rounds them.
func checkMoney(field string, d decimal.Decimal, allowRounding bool) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must be >= 0", ErrValidation, field)
	}
	if !allowRounding && !d.Equal(d.Round(moneyScale)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", ErrValidation, field, moneyScale)
	}
	if d.Round(moneyScale).GreaterThanOrEqual(moneyLimit) {
		return fmt.Errorf("%w: %s must be < %s", ErrValidation, field, moneyLimit.String())
	}
	return nil
}

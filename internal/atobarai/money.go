// Package atobarai holds the NP Atobarai payment domain: amount conversion,
// the transactions API port and the mapping from credit-check results to
// transaction results. NP Atobarai is a Japanese deferred-payment scheme and
// settles exclusively in whole yen.
package atobarai

import (
	"fmt"
	"math"
	"strings"
)

// CurrencyError reports an amount/currency pair NP Atobarai cannot settle.
type CurrencyError struct {
	Currency string
	Reason   string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("currency %q: %s", e.Currency, e.Reason)
}

// MoneyFromSaleor converts a Saleor amount to an NP settlement amount.
// Only JPY is supported and yen have no minor units, so any fractional
// amount is a caller error rather than something to round away.
func MoneyFromSaleor(amount float64, currency string) (int64, error) {
	if strings.ToUpper(currency) != "JPY" {
		return 0, &CurrencyError{Currency: currency, Reason: "NP Atobarai settles in JPY only"}
	}
	if amount < 0 {
		return 0, &CurrencyError{Currency: currency, Reason: "amount must not be negative"}
	}
	if amount != math.Trunc(amount) {
		return 0, &CurrencyError{Currency: currency, Reason: "JPY amounts must be whole yen"}
	}
	return int64(amount), nil
}

// SaleorAmount converts an NP settlement amount back to Saleor's shape.
func SaleorAmount(amount int64) (float64, string) {
	return float64(amount), "JPY"
}

// Package stripe holds the Stripe-specific payment domain: amount conversion,
// the payment-intents API port and the mapping from intent statuses to
// transaction results.
package stripe

import (
	"fmt"
	"math"
	"strings"
)

// CurrencyError reports an amount/currency pair that cannot be converted.
// The direction matters to callers: a bad currency from Saleor is the
// caller's fault, a bad currency from Stripe means the integration is broken.
type CurrencyError struct {
	Currency string
	Reason   string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("currency %q: %s", e.Currency, e.Reason)
}

// currencyDecimals lists the currencies this app accepts and the number of
// minor-unit digits Stripe expects for each. Zero-decimal currencies are
// charged in whole units.
var currencyDecimals = map[string]int{
	"aud": 2, "brl": 2, "cad": 2, "chf": 2, "czk": 2, "dkk": 2,
	"eur": 2, "gbp": 2, "hkd": 2, "huf": 2, "inr": 2, "jpy": 0,
	"krw": 0, "mxn": 2, "nok": 2, "nzd": 2, "pln": 2, "ron": 2,
	"sek": 2, "sgd": 2, "usd": 2, "vnd": 0,
}

// Money is an amount in Stripe's native representation: integer minor units
// and a lowercase currency code.
type Money struct {
	Amount   int64
	Currency string
}

// MoneyFromSaleor converts a Saleor amount (major units, float) into Stripe
// minor units, failing deterministically on unsupported currencies.
func MoneyFromSaleor(amount float64, currency string) (Money, error) {
	code := strings.ToLower(currency)
	decimals, ok := currencyDecimals[code]
	if !ok {
		return Money{}, &CurrencyError{Currency: currency, Reason: "not supported by the Stripe integration"}
	}
	if amount < 0 {
		return Money{}, &CurrencyError{Currency: currency, Reason: "amount must not be negative"}
	}

	minor := math.Round(amount * math.Pow10(decimals))
	return Money{Amount: int64(minor), Currency: code}, nil
}

// SaleorAmount converts Stripe minor units back into the Saleor major-unit
// amount and uppercase currency code. Failure here means Stripe returned a
// currency the app never sent, a broken-integration signal.
func SaleorAmount(amount int64, currency string) (float64, string, error) {
	code := strings.ToLower(currency)
	decimals, ok := currencyDecimals[code]
	if !ok {
		return 0, "", &CurrencyError{Currency: currency, Reason: "not supported by the Stripe integration"}
	}

	return float64(amount) / math.Pow10(decimals), strings.ToUpper(code), nil
}

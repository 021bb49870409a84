// Package atobaraiapp implements the NP Atobarai app's webhook use cases.
// NP Atobarai settles in JPY with no authorize/capture split, so the app
// supports the CHARGE flow only.
package atobaraiapp

import "github.com/stackpine/saleor-payment-apps/internal/domain"

// GatewayInitializeResponse tells the storefront what the gateway accepts.
type GatewayInitializeResponse struct {
	Currencies []string `json:"currencies"`
}

// SessionResponse answers transaction-initialize-session.
type SessionResponse struct {
	PSPReference string
	Result       domain.TransactionResult
	Amount       float64
}

// RequestedResponse answers transaction-cancelation-requested.
type RequestedResponse struct {
	PSPReference string
	Result       domain.TransactionResult
}

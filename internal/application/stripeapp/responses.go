// Package stripeapp implements the Stripe app's webhook use cases. Each use
// case is one request/response cycle: resolve configuration, call Stripe, map
// the outcome into the closed transaction-result set and keep the transaction
// recorder consistent.
package stripeapp

import "github.com/stackpine/saleor-payment-apps/internal/domain"

// PaymentIntentData is handed back to the storefront so it can finish the
// payment client-side.
type PaymentIntentData struct {
	ClientSecret   string `json:"clientSecret"`
	PublishableKey string `json:"publishableKey"`
}

// GatewayInitializeResponse answers payment-gateway-initialize-session.
type GatewayInitializeResponse struct {
	PublishableKey string `json:"publishableKey"`
}

// SessionResponse answers transaction-initialize-session and
// transaction-process-session. Only use cases construct it.
type SessionResponse struct {
	PSPReference string
	Result       domain.TransactionResult
	Amount       float64
	Data         *PaymentIntentData
}

// RequestedResponse answers the charge, cancel and refund lifecycle events.
type RequestedResponse struct {
	PSPReference string
	Result       domain.TransactionResult
	Amount       float64
}

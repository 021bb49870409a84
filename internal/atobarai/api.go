package atobarai

import (
	"context"

	"github.com/stackpine/saleor-payment-apps/internal/application"
)

// Credit-check results NP returns on registration.
const (
	CreditCheckPassed       = "00"
	CreditCheckPending      = "10"
	CreditCheckFailed       = "20"
	CreditCheckBeforeReview = "40"
)

// Customer is the buyer information NP requires for its credit check.
type Customer struct {
	Name        string `json:"customer_name"`
	CompanyName string `json:"company_name,omitempty"`
	ZipCode     string `json:"zip_code"`
	Address     string `json:"address"`
	Tel         string `json:"tel"`
	Email       string `json:"email"`
}

// RegisterTransactionArgs registers a new NP transaction. ShopTransactionID
// doubles as NP's dedup key for redelivered webhooks, so callers pass the
// Saleor idempotency key through it.
type RegisterTransactionArgs struct {
	ShopTransactionID string
	Amount            int64
	Customer          Customer
}

// Transaction is NP's view of a registered transaction.
type Transaction struct {
	NPTransactionID string `json:"np_transaction_id"`
	AuthoriResult   string `json:"authori_result"`
}

// TransactionsAPI is the boundary to the NP Atobarai gateway.
type TransactionsAPI interface {
	RegisterTransaction(ctx context.Context, args RegisterTransactionArgs) (*Transaction, error)
	CancelTransaction(ctx context.Context, npTransactionID string) error
}

// ClientFactory builds a TransactionsAPI for a channel's NP credentials.
type ClientFactory interface {
	ClientForConfig(cfg application.AtobaraiConfig) TransactionsAPI
}

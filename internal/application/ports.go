package application

import (
	"context"
	"errors"

	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

// ErrTransactionMissing is returned by TransactionRecorder lookups when no
// record exists for the transaction id. It is deliberately distinct from
// backend failures: a missing record on a lifecycle event means the app never
// saw the initialize event, which callers treat as a broken-app state.
var ErrTransactionMissing = errors.New("transaction record not found")

// TransactionRecorder is the port for durable transaction state. Record is an
// upsert with last-write-wins semantics per (context, transaction id) key.
type TransactionRecorder interface {
	RecordTransaction(ctx context.Context, pc domain.PaymentContext, record domain.TransactionRecord) error
	GetTransactionByID(ctx context.Context, pc domain.PaymentContext, saleorTransactionID string) (*domain.TransactionRecord, error)
}

// StripeConfig is the per-channel Stripe setup stored by the configuration UI.
type StripeConfig struct {
	Name           string `json:"name"`
	PublishableKey string `json:"publishable_key"`
	SecretKey      string `json:"secret_key"`
	WebhookSecret  string `json:"webhook_secret"`
}

// AtobaraiConfig is the per-channel NP Atobarai setup.
type AtobaraiConfig struct {
	MerchantCode string `json:"merchant_code"`
	SPCode       string `json:"sp_code"`
	TerminalID   string `json:"terminal_id"`
	Sandbox      bool   `json:"sandbox"`
}

// ConfigRepo resolves provider credentials for a channel. A nil config with a
// nil error means the channel is not configured; only backend failures are
// errors.
type ConfigRepo interface {
	GetStripeConfig(ctx context.Context, cc domain.ChannelContext) (*StripeConfig, error)
	GetAtobaraiConfig(ctx context.Context, cc domain.ChannelContext) (*AtobaraiConfig, error)
}

// VendorResolver decides whether a payment should run against a marketplace
// vendor's own provider account. A nil resolution with a nil error is the
// normal "use the channel default" outcome, not a failure.
type VendorResolver interface {
	ResolveVendorForPayment(ctx context.Context, pc domain.PaymentContext, vendorID string) (*domain.VendorResolution, error)
}

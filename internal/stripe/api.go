package stripe

import (
	"context"

	stripego "github.com/stripe/stripe-go/v74"

	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

// Metadata keys linking Stripe objects back to Saleor.
const (
	MetadataTransactionID = "saleor_transaction_id"
	MetadataSourceID      = "saleor_source_id"
	MetadataSourceType    = "saleor_source_type"
)

// CreatePaymentIntentArgs carries everything the client needs to create an
// intent. StripeAccount is nil unless a vendor-specific connected account was
// resolved; the client must not send the header for the channel default.
type CreatePaymentIntentArgs struct {
	Money          Money
	Flow           domain.TransactionFlow
	IdempotencyKey string
	StripeAccount  *string
	Metadata       map[string]string
}

// CreateRefundArgs targets an existing payment intent.
type CreateRefundArgs struct {
	PaymentIntentID string
	Amount          int64
	Metadata        map[string]string
}

// PaymentIntentsAPI is the boundary to Stripe. Implementations wrap the
// stripe-go SDK; use cases only ever see this interface and *APIError values.
type PaymentIntentsAPI interface {
	CreatePaymentIntent(ctx context.Context, args CreatePaymentIntentArgs) (*stripego.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CapturePaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CreateRefund(ctx context.Context, args CreateRefundArgs) (*stripego.Refund, error)
}

// ClientFactory builds a PaymentIntentsAPI for a channel's secret key.
// Channels can point at different Stripe accounts, so clients are constructed
// per resolved configuration, not per process.
type ClientFactory interface {
	ClientForSecretKey(secretKey string) PaymentIntentsAPI
}

package stripeapp

import (
	"context"
	"log/slog"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
	"github.com/stackpine/saleor-payment-apps/internal/stripe"
)

// InitializeSessionUseCase creates the Stripe payment intent for a new Saleor
// transaction and records the resolved flow. This is the only use case that
// creates provider-side state; the event's idempotency key is forwarded to
// Stripe so a redelivered webhook cannot create a second intent.
type InitializeSessionUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	vendors    application.VendorResolver
	clients    stripe.ClientFactory
	logger     *slog.Logger
}

func NewInitializeSessionUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	vendors application.VendorResolver,
	clients stripe.ClientFactory,
	logger *slog.Logger,
) *InitializeSessionUseCase {
	return &InitializeSessionUseCase{
		configRepo: configRepo,
		recorder:   recorder,
		vendors:    vendors,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *InitializeSessionUseCase) Execute(ctx context.Context, cc domain.ChannelContext, event saleor.TransactionInitializeSessionEvent) (*SessionResponse, error) {
	flow, err := domain.ParseTransactionFlow(event.Action.ActionType)
	if err != nil {
		return nil, application.NewMalformedRequestError("unsupported actionType", err)
	}

	paymentMethod, err := saleor.ParsePaymentMethodData(event.Data)
	if err != nil {
		return nil, application.NewMalformedRequestError("invalid payment method data", err)
	}

	cfg, err := uc.configRepo.GetStripeConfig(ctx, cc)
	if err != nil {
		uc.logger.Error("config lookup failed", "channel", cc.ChannelID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve app configuration", err)
	}
	if cfg == nil {
		return nil, application.NewAppIsNotConfiguredError("stripe is not configured for this channel", nil)
	}

	var stripeAccount *string
	resolution, err := uc.vendors.ResolveVendorForPayment(ctx, cc.PaymentContext, event.SourceObject.VendorID)
	if err != nil {
		uc.logger.Error("vendor resolution failed", "vendor_id", event.SourceObject.VendorID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve vendor account", err)
	}
	if resolution != nil {
		stripeAccount = &resolution.ProviderAccountID
	}

	money, err := stripe.MoneyFromSaleor(event.Action.Amount, event.Action.Currency)
	if err != nil {
		return nil, application.NewMalformedRequestError("unsupported amount or currency", err)
	}

	client := uc.clients.ClientForSecretKey(cfg.SecretKey)
	intent, err := client.CreatePaymentIntent(ctx, stripe.CreatePaymentIntentArgs{
		Money:          money,
		Flow:           flow,
		IdempotencyKey: event.IdempotencyKey,
		StripeAccount:  stripeAccount,
		Metadata: map[string]string{
			stripe.MetadataTransactionID: event.Transaction.ID,
			stripe.MetadataSourceID:      event.SourceObject.ID,
			stripe.MetadataSourceType:    event.SourceObject.Typename,
		},
	})
	if err != nil {
		uc.logger.Error("payment intent creation failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("stripe rejected the payment intent", err)
	}

	// A transport-level success with an unusable body is still a failure:
	// everything downstream depends on these fields.
	if intent.ID == "" {
		return nil, application.NewBrokenAppError("stripe response is missing the payment intent id", nil)
	}
	if intent.ClientSecret == "" {
		return nil, application.NewBrokenAppError("stripe response is missing the client secret", nil)
	}
	amount, _, err := stripe.SaleorAmount(intent.Amount, string(intent.Currency))
	if err != nil {
		return nil, application.NewBrokenAppError("stripe returned a currency the app cannot map", err)
	}

	err = uc.recorder.RecordTransaction(ctx, cc.PaymentContext, domain.TransactionRecord{
		SaleorTransactionID: event.Transaction.ID,
		ProviderPaymentID:   intent.ID,
		ResolvedFlow:        flow,
		SaleorFlow:          flow,
		PaymentMethod:       paymentMethod,
	})
	if err != nil {
		// The intent exists on Stripe's side without a durable pointer to
		// it. Surface a hard failure instead of a silent partial success.
		uc.logger.Error("recording transaction failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("failed to record the transaction", err)
	}

	return &SessionResponse{
		PSPReference: intent.ID,
		Result:       stripe.ResultFromIntentStatus(intent.Status, flow),
		Amount:       amount,
		Data: &PaymentIntentData{
			ClientSecret:   intent.ClientSecret,
			PublishableKey: cfg.PublishableKey,
		},
	}, nil
}

package stripeapp

import (
	"context"
	"log/slog"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
	"github.com/stackpine/saleor-payment-apps/internal/stripe"
)

// ProcessSessionUseCase re-reads the payment intent after the storefront's
// confirmation step and re-maps its current status. The flow comes from the
// record written at initialize time, never from the event.
type ProcessSessionUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	clients    stripe.ClientFactory
	logger     *slog.Logger
}

func NewProcessSessionUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	clients stripe.ClientFactory,
	logger *slog.Logger,
) *ProcessSessionUseCase {
	return &ProcessSessionUseCase{
		configRepo: configRepo,
		recorder:   recorder,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *ProcessSessionUseCase) Execute(ctx context.Context, cc domain.ChannelContext, event saleor.TransactionProcessSessionEvent) (*SessionResponse, error) {
	cfg, err := uc.configRepo.GetStripeConfig(ctx, cc)
	if err != nil {
		uc.logger.Error("config lookup failed", "channel", cc.ChannelID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve app configuration", err)
	}
	if cfg == nil {
		return nil, application.NewAppIsNotConfiguredError("stripe is not configured for this channel", nil)
	}

	record, err := uc.recorder.GetTransactionByID(ctx, cc.PaymentContext, event.Transaction.ID)
	if err != nil {
		uc.logger.Error("transaction record lookup failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("no recorded transaction for this event", err)
	}

	client := uc.clients.ClientForSecretKey(cfg.SecretKey)
	intent, err := client.GetPaymentIntent(ctx, record.ProviderPaymentID)
	if err != nil {
		uc.logger.Error("payment intent retrieval failed", "payment_intent", record.ProviderPaymentID, "error", err)
		return nil, application.NewBrokenAppError("failed to retrieve the payment intent", err)
	}

	if intent.ID == "" || intent.ClientSecret == "" {
		return nil, application.NewBrokenAppError("stripe response is missing required fields", nil)
	}
	amount, _, err := stripe.SaleorAmount(intent.Amount, string(intent.Currency))
	if err != nil {
		return nil, application.NewBrokenAppError("stripe returned a currency the app cannot map", err)
	}

	return &SessionResponse{
		PSPReference: intent.ID,
		Result:       stripe.ResultFromIntentStatus(intent.Status, record.ResolvedFlow),
		Amount:       amount,
		Data: &PaymentIntentData{
			ClientSecret:   intent.ClientSecret,
			PublishableKey: cfg.PublishableKey,
		},
	}, nil
}

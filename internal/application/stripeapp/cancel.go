package stripeapp

import (
	"context"
	"log/slog"

	stripego "github.com/stripe/stripe-go/v74"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
	"github.com/stackpine/saleor-payment-apps/internal/stripe"
)

// CancelationRequestedUseCase cancels the payment intent recorded for a
// transaction. A cancel implies a prior initialize, so a missing record is a
// broken-app state rather than a no-op.
type CancelationRequestedUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	clients    stripe.ClientFactory
	logger     *slog.Logger
}

func NewCancelationRequestedUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	clients stripe.ClientFactory,
	logger *slog.Logger,
) *CancelationRequestedUseCase {
	return &CancelationRequestedUseCase{
		configRepo: configRepo,
		recorder:   recorder,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *CancelationRequestedUseCase) Execute(ctx context.Context, pc domain.PaymentContext, event saleor.TransactionCancelationRequestedEvent) (*RequestedResponse, error) {
	cc := domain.ChannelContext{PaymentContext: pc, ChannelID: event.Transaction.ChannelID()}

	cfg, err := uc.configRepo.GetStripeConfig(ctx, cc)
	if err != nil {
		uc.logger.Error("config lookup failed", "channel", cc.ChannelID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve app configuration", err)
	}
	if cfg == nil {
		return nil, application.NewAppIsNotConfiguredError("stripe is not configured for this channel", nil)
	}

	record, err := uc.recorder.GetTransactionByID(ctx, pc, event.Transaction.ID)
	if err != nil {
		uc.logger.Error("transaction record lookup failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("no recorded transaction for this event", err)
	}

	client := uc.clients.ClientForSecretKey(cfg.SecretKey)
	intent, err := client.CancelPaymentIntent(ctx, record.ProviderPaymentID)
	if err != nil {
		uc.logger.Error("payment intent cancelation failed", "payment_intent", record.ProviderPaymentID, "error", err)
		return nil, application.NewBrokenAppError("failed to cancel the payment intent", err)
	}

	amount, _, err := stripe.SaleorAmount(intent.Amount, string(intent.Currency))
	if err != nil {
		return nil, application.NewBrokenAppError("stripe returned a currency the app cannot map", err)
	}

	var result domain.TransactionResult = domain.CancelFailure{}
	if intent.Status == stripego.PaymentIntentStatusCanceled {
		result = domain.CancelSuccess{}
	}

	return &RequestedResponse{
		PSPReference: intent.ID,
		Result:       result,
		Amount:       amount,
	}, nil
}

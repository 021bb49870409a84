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

// ChargeRequestedUseCase captures a previously authorized payment intent.
// A charge request only makes sense against an AUTHORIZATION-flow record; an
// automatic-capture intent was charged at confirmation and Saleor should
// never ask again.
type ChargeRequestedUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	clients    stripe.ClientFactory
	logger     *slog.Logger
}

func NewChargeRequestedUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	clients stripe.ClientFactory,
	logger *slog.Logger,
) *ChargeRequestedUseCase {
	return &ChargeRequestedUseCase{
		configRepo: configRepo,
		recorder:   recorder,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *ChargeRequestedUseCase) Execute(ctx context.Context, pc domain.PaymentContext, event saleor.TransactionChargeRequestedEvent) (*RequestedResponse, error) {
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
	if record.ResolvedFlow != domain.FlowAuthorization {
		return nil, application.NewBrokenAppError("charge requested for a transaction that was not authorized", nil)
	}

	client := uc.clients.ClientForSecretKey(cfg.SecretKey)
	intent, err := client.CapturePaymentIntent(ctx, record.ProviderPaymentID)
	if err != nil {
		uc.logger.Error("payment intent capture failed", "payment_intent", record.ProviderPaymentID, "error", err)
		return nil, application.NewBrokenAppError("failed to capture the payment intent", err)
	}

	amount, _, err := stripe.SaleorAmount(intent.AmountReceived, string(intent.Currency))
	if err != nil {
		return nil, application.NewBrokenAppError("stripe returned a currency the app cannot map", err)
	}

	var result domain.TransactionResult = domain.ChargeFailure{}
	if intent.Status == stripego.PaymentIntentStatusSucceeded {
		result = domain.ChargeSuccess{}
	}

	return &RequestedResponse{
		PSPReference: intent.ID,
		Result:       result,
		Amount:       amount,
	}, nil
}

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

// RefundRequestedUseCase creates a refund against the recorded payment
// intent. Partial refunds use the amount from the event action.
type RefundRequestedUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	clients    stripe.ClientFactory
	logger     *slog.Logger
}

func NewRefundRequestedUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	clients stripe.ClientFactory,
	logger *slog.Logger,
) *RefundRequestedUseCase {
	return &RefundRequestedUseCase{
		configRepo: configRepo,
		recorder:   recorder,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *RefundRequestedUseCase) Execute(ctx context.Context, pc domain.PaymentContext, event saleor.TransactionRefundRequestedEvent) (*RequestedResponse, error) {
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

	money, err := stripe.MoneyFromSaleor(event.Action.Amount, event.Action.Currency)
	if err != nil {
		return nil, application.NewMalformedRequestError("unsupported amount or currency", err)
	}

	client := uc.clients.ClientForSecretKey(cfg.SecretKey)
	refund, err := client.CreateRefund(ctx, stripe.CreateRefundArgs{
		PaymentIntentID: record.ProviderPaymentID,
		Amount:          money.Amount,
		Metadata: map[string]string{
			stripe.MetadataTransactionID: event.Transaction.ID,
		},
	})
	if err != nil {
		uc.logger.Error("refund creation failed", "payment_intent", record.ProviderPaymentID, "error", err)
		return nil, application.NewBrokenAppError("failed to create the refund", err)
	}

	amount, _, err := stripe.SaleorAmount(refund.Amount, string(refund.Currency))
	if err != nil {
		return nil, application.NewBrokenAppError("stripe returned a currency the app cannot map", err)
	}

	var result domain.TransactionResult = domain.RefundFailure{}
	switch refund.Status {
	case stripego.RefundStatusSucceeded, stripego.RefundStatusPending:
		result = domain.RefundSuccess{}
	}

	return &RequestedResponse{
		PSPReference: record.ProviderPaymentID,
		Result:       result,
		Amount:       amount,
	}, nil
}

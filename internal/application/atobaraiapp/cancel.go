package atobaraiapp

import (
	"context"
	"log/slog"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/atobarai"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
)

// CancelationRequestedUseCase cancels a registered NP transaction.
type CancelationRequestedUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	clients    atobarai.ClientFactory
	logger     *slog.Logger
}

func NewCancelationRequestedUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	clients atobarai.ClientFactory,
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

	cfg, err := uc.configRepo.GetAtobaraiConfig(ctx, cc)
	if err != nil {
		uc.logger.Error("config lookup failed", "channel", cc.ChannelID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve app configuration", err)
	}
	if cfg == nil {
		return nil, application.NewAppIsNotConfiguredError("np atobarai is not configured for this channel", nil)
	}

	record, err := uc.recorder.GetTransactionByID(ctx, pc, event.Transaction.ID)
	if err != nil {
		uc.logger.Error("transaction record lookup failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("no recorded transaction for this event", err)
	}

	client := uc.clients.ClientForConfig(*cfg)
	if err := client.CancelTransaction(ctx, record.ProviderPaymentID); err != nil {
		uc.logger.Error("np transaction cancelation failed", "np_transaction_id", record.ProviderPaymentID, "error", err)
		return nil, application.NewBrokenAppError("failed to cancel the np transaction", err)
	}

	return &RequestedResponse{
		PSPReference: record.ProviderPaymentID,
		Result:       domain.CancelSuccess{},
	}, nil
}

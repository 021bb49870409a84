package atobaraiapp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/atobarai"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
)

// InitializeSessionUseCase registers an NP transaction for a new Saleor
// transaction. The Saleor idempotency key becomes NP's shop transaction id,
// which is how NP deduplicates redelivered webhooks.
type InitializeSessionUseCase struct {
	configRepo application.ConfigRepo
	recorder   application.TransactionRecorder
	clients    atobarai.ClientFactory
	logger     *slog.Logger
}

func NewInitializeSessionUseCase(
	configRepo application.ConfigRepo,
	recorder application.TransactionRecorder,
	clients atobarai.ClientFactory,
	logger *slog.Logger,
) *InitializeSessionUseCase {
	return &InitializeSessionUseCase{
		configRepo: configRepo,
		recorder:   recorder,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *InitializeSessionUseCase) Execute(ctx context.Context, cc domain.ChannelContext, event saleor.TransactionInitializeSessionEvent) (*SessionResponse, error) {
	flow, err := domain.ParseTransactionFlow(event.Action.ActionType)
	if err != nil {
		return nil, application.NewMalformedRequestError("unsupported actionType", err)
	}
	if flow != domain.FlowCharge {
		return nil, application.NewMalformedRequestError("np atobarai does not support the AUTHORIZATION flow", nil)
	}

	customer, err := customerFromSource(event.SourceObject)
	if err != nil {
		return nil, application.NewMalformedRequestError("incomplete billing information", err)
	}

	cfg, err := uc.configRepo.GetAtobaraiConfig(ctx, cc)
	if err != nil {
		uc.logger.Error("config lookup failed", "channel", cc.ChannelID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve app configuration", err)
	}
	if cfg == nil {
		return nil, application.NewAppIsNotConfiguredError("np atobarai is not configured for this channel", nil)
	}

	amount, err := atobarai.MoneyFromSaleor(event.Action.Amount, event.Action.Currency)
	if err != nil {
		return nil, application.NewMalformedRequestError("unsupported amount or currency", err)
	}

	client := uc.clients.ClientForConfig(*cfg)
	tx, err := client.RegisterTransaction(ctx, atobarai.RegisterTransactionArgs{
		ShopTransactionID: event.IdempotencyKey,
		Amount:            amount,
		Customer:          customer,
	})
	if err != nil {
		uc.logger.Error("np transaction registration failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("np atobarai rejected the transaction", err)
	}
	if tx.NPTransactionID == "" {
		return nil, application.NewBrokenAppError("np response is missing the transaction id", nil)
	}

	err = uc.recorder.RecordTransaction(ctx, cc.PaymentContext, domain.TransactionRecord{
		SaleorTransactionID: event.Transaction.ID,
		ProviderPaymentID:   tx.NPTransactionID,
		ResolvedFlow:        domain.FlowCharge,
		SaleorFlow:          flow,
		PaymentMethod:       "atobarai",
	})
	if err != nil {
		uc.logger.Error("recording transaction failed", "transaction_id", event.Transaction.ID, "error", err)
		return nil, application.NewBrokenAppError("failed to record the transaction", err)
	}

	saleorAmount, _ := atobarai.SaleorAmount(amount)

	return &SessionResponse{
		PSPReference: tx.NPTransactionID,
		Result:       atobarai.ResultFromCreditCheck(tx.AuthoriResult),
		Amount:       saleorAmount,
	}, nil
}

func customerFromSource(src saleor.SourceObject) (atobarai.Customer, error) {
	if src.BillingAddress == nil {
		return atobarai.Customer{}, fmt.Errorf("source object %s has no billing address", src.ID)
	}
	addr := src.BillingAddress

	var missing []string
	if addr.LastName == "" && addr.FirstName == "" {
		missing = append(missing, "name")
	}
	if addr.PostalCode == "" {
		missing = append(missing, "postal code")
	}
	if addr.StreetAddress1 == "" {
		missing = append(missing, "street address")
	}
	if len(missing) > 0 {
		return atobarai.Customer{}, fmt.Errorf("billing address is missing: %s", strings.Join(missing, ", "))
	}

	return atobarai.Customer{
		Name:        strings.TrimSpace(addr.LastName + " " + addr.FirstName),
		CompanyName: addr.CompanyName,
		ZipCode:     addr.PostalCode,
		Address:     strings.TrimSpace(addr.City + " " + addr.StreetAddress1),
		Tel:         addr.Phone,
		Email:       src.Email,
	}, nil
}

// Package postgres persists transaction records. The table is the single
// source of truth for mapping Saleor transactions to provider resources; no
// in-memory cache sits in front of it.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/persistence"
)

type TransactionRecorder struct {
	db *persistence.DB
}

func NewTransactionRecorder(db *persistence.DB) *TransactionRecorder {
	return &TransactionRecorder{db: db}
}

// RecordTransaction upserts the record for (context, transaction id). Last
// write wins: a redelivered initialize event rewrites the same row instead of
// creating a duplicate.
func (r *TransactionRecorder) RecordTransaction(ctx context.Context, pc domain.PaymentContext, record domain.TransactionRecord) error {
	query := `
		INSERT INTO transaction_records (
			saleor_api_url, app_id, saleor_transaction_id,
			provider_payment_id, resolved_flow, saleor_flow, payment_method,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (saleor_api_url, app_id, saleor_transaction_id)
		DO UPDATE SET
			provider_payment_id = EXCLUDED.provider_payment_id,
			resolved_flow       = EXCLUDED.resolved_flow,
			saleor_flow         = EXCLUDED.saleor_flow,
			payment_method      = EXCLUDED.payment_method,
			updated_at          = now()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		pc.SaleorAPIURL,
		pc.AppID,
		record.SaleorTransactionID,
		record.ProviderPaymentID,
		string(record.ResolvedFlow),
		string(record.SaleorFlow),
		record.PaymentMethod,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	return nil
}

func (r *TransactionRecorder) GetTransactionByID(ctx context.Context, pc domain.PaymentContext, saleorTransactionID string) (*domain.TransactionRecord, error) {
	query := `
		SELECT saleor_transaction_id, provider_payment_id, resolved_flow, saleor_flow, payment_method
		FROM transaction_records
		WHERE saleor_api_url = $1 AND app_id = $2 AND saleor_transaction_id = $3
	`

	var (
		record       domain.TransactionRecord
		resolvedFlow string
		saleorFlow   string
	)
	err := r.db.Pool.QueryRow(ctx, query, pc.SaleorAPIURL, pc.AppID, saleorTransactionID).Scan(
		&record.SaleorTransactionID,
		&record.ProviderPaymentID,
		&resolvedFlow,
		&saleorFlow,
		&record.PaymentMethod,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", saleorTransactionID, application.ErrTransactionMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction record: %w", err)
	}

	record.ResolvedFlow = domain.TransactionFlow(resolvedFlow)
	record.SaleorFlow = domain.TransactionFlow(saleorFlow)

	return &record, nil
}

// Package memory provides an in-process transaction recorder for local
// development. It honors the same last-write-wins contract as the postgres
// implementation but loses everything on restart, so it must never back a
// production deployment.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

type TransactionRecorder struct {
	mu      sync.RWMutex
	records map[string]domain.TransactionRecord
}

func NewTransactionRecorder() *TransactionRecorder {
	return &TransactionRecorder{records: make(map[string]domain.TransactionRecord)}
}

func key(pc domain.PaymentContext, saleorTransactionID string) string {
	return pc.SaleorAPIURL + "|" + pc.AppID + "|" + saleorTransactionID
}

func (r *TransactionRecorder) RecordTransaction(_ context.Context, pc domain.PaymentContext, record domain.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key(pc, record.SaleorTransactionID)] = record
	return nil
}

func (r *TransactionRecorder) GetTransactionByID(_ context.Context, pc domain.PaymentContext, saleorTransactionID string) (*domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[key(pc, saleorTransactionID)]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", saleorTransactionID, application.ErrTransactionMissing)
	}
	return &record, nil
}

package application

import (
	"context"
	"sync"

	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

// MockTransactionRecorder
type MockTransactionRecorder struct {
	mu      sync.RWMutex
	records map[string]domain.TransactionRecord

	RecordTransactionFn  func(ctx context.Context, pc domain.PaymentContext, record domain.TransactionRecord) error
	GetTransactionByIDFn func(ctx context.Context, pc domain.PaymentContext, saleorTransactionID string) (*domain.TransactionRecord, error)

	RecordCalls int
}

func NewMockTransactionRecorder() *MockTransactionRecorder {
	return &MockTransactionRecorder{
		records: make(map[string]domain.TransactionRecord),
	}
}

func recordKey(pc domain.PaymentContext, saleorTransactionID string) string {
	return pc.SaleorAPIURL + "|" + pc.AppID + "|" + saleorTransactionID
}

func (m *MockTransactionRecorder) RecordTransaction(ctx context.Context, pc domain.PaymentContext, record domain.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls++
	if m.RecordTransactionFn != nil {
		return m.RecordTransactionFn(ctx, pc, record)
	}
	m.records[recordKey(pc, record.SaleorTransactionID)] = record
	return nil
}

func (m *MockTransactionRecorder) GetTransactionByID(ctx context.Context, pc domain.PaymentContext, saleorTransactionID string) (*domain.TransactionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetTransactionByIDFn != nil {
		return m.GetTransactionByIDFn(ctx, pc, saleorTransactionID)
	}
	if record, ok := m.records[recordKey(pc, saleorTransactionID)]; ok {
		return &record, nil
	}
	return nil, ErrTransactionMissing
}

// Seed stores a record directly, bypassing the call counter.
func (m *MockTransactionRecorder) Seed(pc domain.PaymentContext, record domain.TransactionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey(pc, record.SaleorTransactionID)] = record
}

// MockConfigRepo
type MockConfigRepo struct {
	StripeConfig   *StripeConfig
	AtobaraiConfig *AtobaraiConfig

	GetStripeConfigFn   func(ctx context.Context, cc domain.ChannelContext) (*StripeConfig, error)
	GetAtobaraiConfigFn func(ctx context.Context, cc domain.ChannelContext) (*AtobaraiConfig, error)
}

func (m *MockConfigRepo) GetStripeConfig(ctx context.Context, cc domain.ChannelContext) (*StripeConfig, error) {
	if m.GetStripeConfigFn != nil {
		return m.GetStripeConfigFn(ctx, cc)
	}
	return m.StripeConfig, nil
}

func (m *MockConfigRepo) GetAtobaraiConfig(ctx context.Context, cc domain.ChannelContext) (*AtobaraiConfig, error) {
	if m.GetAtobaraiConfigFn != nil {
		return m.GetAtobaraiConfigFn(ctx, cc)
	}
	return m.AtobaraiConfig, nil
}

// MockVendorResolver
type MockVendorResolver struct {
	Resolution *domain.VendorResolution

	ResolveVendorForPaymentFn func(ctx context.Context, pc domain.PaymentContext, vendorID string) (*domain.VendorResolution, error)
}

func (m *MockVendorResolver) ResolveVendorForPayment(ctx context.Context, pc domain.PaymentContext, vendorID string) (*domain.VendorResolution, error) {
	if m.ResolveVendorForPaymentFn != nil {
		return m.ResolveVendorForPaymentFn(ctx, pc, vendorID)
	}
	return m.Resolution, nil
}

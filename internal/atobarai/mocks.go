package atobarai

import (
	"context"
	"sync"

	"github.com/stackpine/saleor-payment-apps/internal/application"
)

// MockTransactionsAPI
type MockTransactionsAPI struct {
	mu sync.Mutex

	RegisterTransactionFn func(ctx context.Context, args RegisterTransactionArgs) (*Transaction, error)
	CancelTransactionFn   func(ctx context.Context, npTransactionID string) error

	RegisterCalls []RegisterTransactionArgs
	CancelCalls   []string
}

func (m *MockTransactionsAPI) RegisterTransaction(ctx context.Context, args RegisterTransactionArgs) (*Transaction, error) {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, args)
	m.mu.Unlock()
	if m.RegisterTransactionFn != nil {
		return m.RegisterTransactionFn(ctx, args)
	}
	return &Transaction{NPTransactionID: "np_mock", AuthoriResult: CreditCheckPassed}, nil
}

func (m *MockTransactionsAPI) CancelTransaction(ctx context.Context, npTransactionID string) error {
	m.mu.Lock()
	m.CancelCalls = append(m.CancelCalls, npTransactionID)
	m.mu.Unlock()
	if m.CancelTransactionFn != nil {
		return m.CancelTransactionFn(ctx, npTransactionID)
	}
	return nil
}

// MockClientFactory hands the same client to every config and remembers the
// configs it was asked for.
type MockClientFactory struct {
	Client *MockTransactionsAPI

	Configs []application.AtobaraiConfig
}

func NewMockClientFactory() *MockClientFactory {
	return &MockClientFactory{Client: &MockTransactionsAPI{}}
}

func (f *MockClientFactory) ClientForConfig(cfg application.AtobaraiConfig) TransactionsAPI {
	f.Configs = append(f.Configs, cfg)
	return f.Client
}

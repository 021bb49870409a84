package stripe

import (
	"context"
	"sync"

	stripego "github.com/stripe/stripe-go/v74"
)

// MockPaymentIntentsAPI
type MockPaymentIntentsAPI struct {
	mu sync.Mutex

	CreatePaymentIntentFn  func(ctx context.Context, args CreatePaymentIntentArgs) (*stripego.PaymentIntent, error)
	GetPaymentIntentFn     func(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CapturePaymentIntentFn func(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CancelPaymentIntentFn  func(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CreateRefundFn         func(ctx context.Context, args CreateRefundArgs) (*stripego.Refund, error)

	CreateCalls []CreatePaymentIntentArgs
	RefundCalls []CreateRefundArgs
}

func (m *MockPaymentIntentsAPI) CreatePaymentIntent(ctx context.Context, args CreatePaymentIntentArgs) (*stripego.PaymentIntent, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, args)
	m.mu.Unlock()
	if m.CreatePaymentIntentFn != nil {
		return m.CreatePaymentIntentFn(ctx, args)
	}
	return &stripego.PaymentIntent{
		ID:           "pi_mock",
		ClientSecret: "pi_mock_secret",
		Status:       stripego.PaymentIntentStatusRequiresPaymentMethod,
		Amount:       args.Money.Amount,
		Currency:     stripego.Currency(args.Money.Currency),
	}, nil
}

func (m *MockPaymentIntentsAPI) GetPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	if m.GetPaymentIntentFn != nil {
		return m.GetPaymentIntentFn(ctx, id)
	}
	return &stripego.PaymentIntent{ID: id, Status: stripego.PaymentIntentStatusSucceeded}, nil
}

func (m *MockPaymentIntentsAPI) CapturePaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	if m.CapturePaymentIntentFn != nil {
		return m.CapturePaymentIntentFn(ctx, id)
	}
	return &stripego.PaymentIntent{ID: id, Status: stripego.PaymentIntentStatusSucceeded}, nil
}

func (m *MockPaymentIntentsAPI) CancelPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	if m.CancelPaymentIntentFn != nil {
		return m.CancelPaymentIntentFn(ctx, id)
	}
	return &stripego.PaymentIntent{ID: id, Status: stripego.PaymentIntentStatusCanceled}, nil
}

func (m *MockPaymentIntentsAPI) CreateRefund(ctx context.Context, args CreateRefundArgs) (*stripego.Refund, error) {
	m.mu.Lock()
	m.RefundCalls = append(m.RefundCalls, args)
	m.mu.Unlock()
	if m.CreateRefundFn != nil {
		return m.CreateRefundFn(ctx, args)
	}
	return &stripego.Refund{ID: "re_mock", Status: stripego.RefundStatusSucceeded, Amount: args.Amount}, nil
}

// MockClientFactory hands the same client to every secret key and remembers
// which keys were asked for.
type MockClientFactory struct {
	Client *MockPaymentIntentsAPI

	SecretKeys []string
}

func NewMockClientFactory() *MockClientFactory {
	return &MockClientFactory{Client: &MockPaymentIntentsAPI{}}
}

func (f *MockClientFactory) ClientForSecretKey(secretKey string) PaymentIntentsAPI {
	f.SecretKeys = append(f.SecretKeys, secretKey)
	return f.Client
}

package stripeapp_test

import (
	"context"
	"errors"
	"testing"

	stripego "github.com/stripe/stripe-go/v74"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/application/stripeapp"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
	"github.com/stackpine/saleor-payment-apps/internal/stripe"
)

func seededRecorder(flow domain.TransactionFlow) *application.MockTransactionRecorder {
	recorder := application.NewMockTransactionRecorder()
	recorder.Seed(testChannelContext().PaymentContext, domain.TransactionRecord{
		SaleorTransactionID: "tx-1",
		ProviderPaymentID:   "pi_1",
		ResolvedFlow:        flow,
		SaleorFlow:          flow,
		PaymentMethod:       "card",
	})
	return recorder
}

func transactionRef() saleor.TransactionRef {
	return saleor.TransactionRef{
		ID:       "tx-1",
		Checkout: &saleor.CheckoutRef{ID: "checkout-1", Channel: saleor.Channel{ID: "channel-1"}},
	}
}

func TestProcessSession(t *testing.T) {
	configRepo := &application.MockConfigRepo{StripeConfig: testStripeConfig()}

	t.Run("maps the intent status using the recorded flow", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowAuthorization)
		clients := stripe.NewMockClientFactory()
		clients.Client.GetPaymentIntentFn = func(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
			return &stripego.PaymentIntent{
				ID:           id,
				ClientSecret: "pi_1_secret",
				Status:       stripego.PaymentIntentStatusRequiresCapture,
				Amount:       10050,
				Currency:     stripego.CurrencyUSD,
			}, nil
		}

		uc := stripeapp.NewProcessSessionUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), testChannelContext(), saleor.TransactionProcessSessionEvent{
			Transaction: transactionRef(),
		})

		require.NoError(t, err)
		assert.Equal(t, "pi_1", resp.PSPReference)
		assert.Equal(t, "AUTHORIZATION_SUCCESS", resp.Result.ResultCode())
		assert.Equal(t, 100.50, resp.Amount)
		require.NotNil(t, resp.Data)
		assert.Equal(t, "pi_1_secret", resp.Data.ClientSecret)
	})

	t.Run("missing record is a broken app", func(t *testing.T) {
		recorder := application.NewMockTransactionRecorder()
		clients := stripe.NewMockClientFactory()

		uc := stripeapp.NewProcessSessionUseCase(configRepo, recorder, clients, testLogger())
		_, err := uc.Execute(context.Background(), testChannelContext(), saleor.TransactionProcessSessionEvent{
			Transaction: transactionRef(),
		})

		var broken *application.BrokenAppError
		require.ErrorAs(t, err, &broken)
		assert.ErrorIs(t, err, application.ErrTransactionMissing)
	})

	t.Run("not configured before touching the recorder", func(t *testing.T) {
		recorder := application.NewMockTransactionRecorder()
		recorder.GetTransactionByIDFn = func(ctx context.Context, pc domain.PaymentContext, id string) (*domain.TransactionRecord, error) {
			t.Fatal("recorder must not be consulted for an unconfigured channel")
			return nil, nil
		}

		uc := stripeapp.NewProcessSessionUseCase(&application.MockConfigRepo{}, recorder, stripe.NewMockClientFactory(), testLogger())
		_, err := uc.Execute(context.Background(), testChannelContext(), saleor.TransactionProcessSessionEvent{
			Transaction: transactionRef(),
		})

		var notConfigured *application.AppIsNotConfiguredError
		require.ErrorAs(t, err, &notConfigured)
	})
}

func TestChargeRequested(t *testing.T) {
	configRepo := &application.MockConfigRepo{StripeConfig: testStripeConfig()}
	pc := testChannelContext().PaymentContext

	t.Run("captures an authorized intent", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowAuthorization)
		clients := stripe.NewMockClientFactory()
		clients.Client.CapturePaymentIntentFn = func(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
			return &stripego.PaymentIntent{
				ID:             id,
				Status:         stripego.PaymentIntentStatusSucceeded,
				AmountReceived: 10050,
				Currency:       stripego.CurrencyUSD,
			}, nil
		}

		uc := stripeapp.NewChargeRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, saleor.TransactionChargeRequestedEvent{
			Transaction: transactionRef(),
		})

		require.NoError(t, err)
		assert.Equal(t, "CHARGE_SUCCESS", resp.Result.ResultCode())
		assert.Equal(t, 100.50, resp.Amount)
		assert.Equal(t, "pi_1", resp.PSPReference)
	})

	t.Run("a capture that does not succeed is a charge failure", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowAuthorization)
		clients := stripe.NewMockClientFactory()
		clients.Client.CapturePaymentIntentFn = func(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
			return &stripego.PaymentIntent{
				ID:       id,
				Status:   stripego.PaymentIntentStatusRequiresCapture,
				Currency: stripego.CurrencyUSD,
			}, nil
		}

		uc := stripeapp.NewChargeRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, saleor.TransactionChargeRequestedEvent{
			Transaction: transactionRef(),
		})

		require.NoError(t, err)
		assert.Equal(t, "CHARGE_FAILURE", resp.Result.ResultCode())
	})

	t.Run("rejects a charge against a charge-flow record", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowCharge)
		clients := stripe.NewMockClientFactory()

		uc := stripeapp.NewChargeRequestedUseCase(configRepo, recorder, clients, testLogger())
		_, err := uc.Execute(context.Background(), pc, saleor.TransactionChargeRequestedEvent{
			Transaction: transactionRef(),
		})

		var broken *application.BrokenAppError
		require.ErrorAs(t, err, &broken)
	})

	t.Run("capture failure is a broken app", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowAuthorization)
		clients := stripe.NewMockClientFactory()
		clients.Client.CapturePaymentIntentFn = func(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
			return nil, errors.New("api down")
		}

		uc := stripeapp.NewChargeRequestedUseCase(configRepo, recorder, clients, testLogger())
		_, err := uc.Execute(context.Background(), pc, saleor.TransactionChargeRequestedEvent{
			Transaction: transactionRef(),
		})

		var broken *application.BrokenAppError
		require.ErrorAs(t, err, &broken)
	})
}

func TestCancelationRequested(t *testing.T) {
	configRepo := &application.MockConfigRepo{StripeConfig: testStripeConfig()}
	pc := testChannelContext().PaymentContext

	t.Run("cancels the recorded intent", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowAuthorization)
		clients := stripe.NewMockClientFactory()
		clients.Client.CancelPaymentIntentFn = func(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
			return &stripego.PaymentIntent{
				ID:       id,
				Status:   stripego.PaymentIntentStatusCanceled,
				Amount:   10050,
				Currency: stripego.CurrencyUSD,
			}, nil
		}

		uc := stripeapp.NewCancelationRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, saleor.TransactionCancelationRequestedEvent{
			Transaction: transactionRef(),
		})

		require.NoError(t, err)
		assert.Equal(t, "CANCEL_SUCCESS", resp.Result.ResultCode())
		assert.Equal(t, "pi_1", resp.PSPReference)
	})

	t.Run("a cancel that does not land is a cancel failure", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowAuthorization)
		clients := stripe.NewMockClientFactory()
		clients.Client.CancelPaymentIntentFn = func(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
			return &stripego.PaymentIntent{
				ID:       id,
				Status:   stripego.PaymentIntentStatusRequiresCapture,
				Currency: stripego.CurrencyUSD,
			}, nil
		}

		uc := stripeapp.NewCancelationRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, saleor.TransactionCancelationRequestedEvent{
			Transaction: transactionRef(),
		})

		require.NoError(t, err)
		assert.Equal(t, "CANCEL_FAILURE", resp.Result.ResultCode())
	})

	t.Run("missing record is a broken app", func(t *testing.T) {
		recorder := application.NewMockTransactionRecorder()
		clients := stripe.NewMockClientFactory()

		uc := stripeapp.NewCancelationRequestedUseCase(configRepo, recorder, clients, testLogger())
		_, err := uc.Execute(context.Background(), pc, saleor.TransactionCancelationRequestedEvent{
			Transaction: transactionRef(),
		})

		var broken *application.BrokenAppError
		require.ErrorAs(t, err, &broken)
	})
}

func TestRefundRequested(t *testing.T) {
	configRepo := &application.MockConfigRepo{StripeConfig: testStripeConfig()}
	pc := testChannelContext().PaymentContext

	refundEvent := func(amount float64, currency string) saleor.TransactionRefundRequestedEvent {
		return saleor.TransactionRefundRequestedEvent{
			Action:      saleor.Action{Amount: amount, Currency: currency, ActionType: "REFUND"},
			Transaction: transactionRef(),
		}
	}

	t.Run("creates a refund for the requested amount", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowCharge)
		clients := stripe.NewMockClientFactory()
		clients.Client.CreateRefundFn = func(ctx context.Context, args stripe.CreateRefundArgs) (*stripego.Refund, error) {
			return &stripego.Refund{
				ID:       "re_1",
				Status:   stripego.RefundStatusSucceeded,
				Amount:   args.Amount,
				Currency: stripego.CurrencyUSD,
			}, nil
		}

		uc := stripeapp.NewRefundRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, refundEvent(25.00, "USD"))

		require.NoError(t, err)
		assert.Equal(t, "REFUND_SUCCESS", resp.Result.ResultCode())
		assert.Equal(t, 25.00, resp.Amount)
		// Saleor correlates refunds by the original payment reference.
		assert.Equal(t, "pi_1", resp.PSPReference)

		require.Len(t, clients.Client.RefundCalls, 1)
		call := clients.Client.RefundCalls[0]
		assert.Equal(t, "pi_1", call.PaymentIntentID)
		assert.Equal(t, int64(2500), call.Amount)
	})

	t.Run("a pending refund counts as success", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowCharge)
		clients := stripe.NewMockClientFactory()
		clients.Client.CreateRefundFn = func(ctx context.Context, args stripe.CreateRefundArgs) (*stripego.Refund, error) {
			return &stripego.Refund{ID: "re_1", Status: stripego.RefundStatusPending, Amount: args.Amount, Currency: stripego.CurrencyUSD}, nil
		}

		uc := stripeapp.NewRefundRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, refundEvent(25.00, "USD"))

		require.NoError(t, err)
		assert.Equal(t, "REFUND_SUCCESS", resp.Result.ResultCode())
	})

	t.Run("a failed refund is a refund failure", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowCharge)
		clients := stripe.NewMockClientFactory()
		clients.Client.CreateRefundFn = func(ctx context.Context, args stripe.CreateRefundArgs) (*stripego.Refund, error) {
			return &stripego.Refund{ID: "re_1", Status: stripego.RefundStatusFailed, Amount: args.Amount, Currency: stripego.CurrencyUSD}, nil
		}

		uc := stripeapp.NewRefundRequestedUseCase(configRepo, recorder, clients, testLogger())
		resp, err := uc.Execute(context.Background(), pc, refundEvent(25.00, "USD"))

		require.NoError(t, err)
		assert.Equal(t, "REFUND_FAILURE", resp.Result.ResultCode())
	})

	t.Run("unsupported refund currency is malformed", func(t *testing.T) {
		recorder := seededRecorder(domain.FlowCharge)
		clients := stripe.NewMockClientFactory()

		uc := stripeapp.NewRefundRequestedUseCase(configRepo, recorder, clients, testLogger())
		_, err := uc.Execute(context.Background(), pc, refundEvent(25.00, "XYZ"))

		var malformed *application.MalformedRequestError
		require.ErrorAs(t, err, &malformed)
		assert.Empty(t, clients.Client.RefundCalls)
	})
}

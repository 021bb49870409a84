package atobaraiapp_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/application/atobaraiapp"
	"github.com/stackpine/saleor-payment-apps/internal/atobarai"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testChannelContext() domain.ChannelContext {
	return domain.ChannelContext{
		PaymentContext: domain.PaymentContext{
			SaleorAPIURL: "https://shop.example.com/graphql/",
			AppID:        "app-atobarai",
		},
		ChannelID: "channel-jp",
	}
}

func testAtobaraiConfig() *application.AtobaraiConfig {
	return &application.AtobaraiConfig{
		MerchantCode: "merchant",
		SPCode:       "sp",
		TerminalID:   "terminal",
		Sandbox:      true,
	}
}

func initializeEvent() saleor.TransactionInitializeSessionEvent {
	return saleor.TransactionInitializeSessionEvent{
		IdempotencyKey: "idem-1",
		Action: saleor.Action{
			Amount:     5000,
			Currency:   "JPY",
			ActionType: "CHARGE",
		},
		Transaction: saleor.TransactionRef{ID: "tx-1"},
		SourceObject: saleor.SourceObject{
			Typename: "Checkout",
			ID:       "checkout-1",
			Channel:  saleor.Channel{ID: "channel-jp"},
			Email:    "taro@example.com",
			BillingAddress: &saleor.BillingAddress{
				FirstName:      "Taro",
				LastName:       "Yamada",
				StreetAddress1: "1-2-3 Ginza",
				City:           "Chuo-ku",
				PostalCode:     "104-0061",
				Phone:          "0312345678",
			},
		},
	}
}

func newInitializeUseCase(
	configRepo *application.MockConfigRepo,
	recorder *application.MockTransactionRecorder,
	clients *atobarai.MockClientFactory,
) *atobaraiapp.InitializeSessionUseCase {
	return atobaraiapp.NewInitializeSessionUseCase(configRepo, recorder, clients, testLogger())
}

func TestInitializeSession_Success(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	recorder := application.NewMockTransactionRecorder()
	clients := atobarai.NewMockClientFactory()
	clients.Client.RegisterTransactionFn = func(ctx context.Context, args atobarai.RegisterTransactionArgs) (*atobarai.Transaction, error) {
		return &atobarai.Transaction{NPTransactionID: "np-1", AuthoriResult: atobarai.CreditCheckPassed}, nil
	}

	uc := newInitializeUseCase(configRepo, recorder, clients)
	resp, err := uc.Execute(context.Background(), testChannelContext(), initializeEvent())

	require.NoError(t, err)
	assert.Equal(t, "np-1", resp.PSPReference)
	assert.Equal(t, "CHARGE_SUCCESS", resp.Result.ResultCode())
	assert.Equal(t, float64(5000), resp.Amount)

	require.Len(t, clients.Client.RegisterCalls, 1)
	call := clients.Client.RegisterCalls[0]
	assert.Equal(t, "idem-1", call.ShopTransactionID, "the Saleor idempotency key dedups NP registrations")
	assert.Equal(t, int64(5000), call.Amount)
	assert.Equal(t, "Yamada Taro", call.Customer.Name)
	assert.Equal(t, "104-0061", call.Customer.ZipCode)
	assert.Equal(t, "taro@example.com", call.Customer.Email)

	record, err := recorder.GetTransactionByID(context.Background(), testChannelContext().PaymentContext, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "np-1", record.ProviderPaymentID)
	assert.Equal(t, domain.FlowCharge, record.ResolvedFlow)
	assert.Equal(t, "atobarai", record.PaymentMethod)
}

func TestInitializeSession_PendingReviewRequiresAction(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()
	clients.Client.RegisterTransactionFn = func(ctx context.Context, args atobarai.RegisterTransactionArgs) (*atobarai.Transaction, error) {
		return &atobarai.Transaction{NPTransactionID: "np-1", AuthoriResult: atobarai.CreditCheckPending}, nil
	}

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	resp, err := uc.Execute(context.Background(), testChannelContext(), initializeEvent())

	require.NoError(t, err)
	assert.Equal(t, "CHARGE_ACTION_REQUIRED", resp.Result.ResultCode())
}

func TestInitializeSession_FailedCreditCheckIsChargeFailure(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()
	clients.Client.RegisterTransactionFn = func(ctx context.Context, args atobarai.RegisterTransactionArgs) (*atobarai.Transaction, error) {
		return &atobarai.Transaction{NPTransactionID: "np-1", AuthoriResult: atobarai.CreditCheckFailed}, nil
	}

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	resp, err := uc.Execute(context.Background(), testChannelContext(), initializeEvent())

	require.NoError(t, err)
	assert.Equal(t, "CHARGE_FAILURE", resp.Result.ResultCode())
}

func TestInitializeSession_AuthorizationFlowIsMalformed(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()

	event := initializeEvent()
	event.Action.ActionType = "AUTHORIZATION"

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), event)

	var malformed *application.MalformedRequestError
	require.ErrorAs(t, err, &malformed)
	assert.Empty(t, clients.Client.RegisterCalls)
}

func TestInitializeSession_NonJPYIsMalformed(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()

	event := initializeEvent()
	event.Action.Currency = "USD"

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), event)

	var malformed *application.MalformedRequestError
	require.ErrorAs(t, err, &malformed)
	assert.Empty(t, clients.Client.RegisterCalls)
}

func TestInitializeSession_IncompleteBillingAddressIsMalformed(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()

	event := initializeEvent()
	event.SourceObject.BillingAddress.PostalCode = ""

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), event)

	var malformed *application.MalformedRequestError
	require.ErrorAs(t, err, &malformed)
}

func TestInitializeSession_MissingBillingAddressIsMalformed(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()

	event := initializeEvent()
	event.SourceObject.BillingAddress = nil

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), event)

	var malformed *application.MalformedRequestError
	require.ErrorAs(t, err, &malformed)
}

func TestInitializeSession_NotConfigured(t *testing.T) {
	clients := atobarai.NewMockClientFactory()

	uc := newInitializeUseCase(&application.MockConfigRepo{}, application.NewMockTransactionRecorder(), clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), initializeEvent())

	var notConfigured *application.AppIsNotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
	assert.Empty(t, clients.Client.RegisterCalls)
}

func TestInitializeSession_MissingNPTransactionIDIsBrokenApp(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	clients := atobarai.NewMockClientFactory()
	clients.Client.RegisterTransactionFn = func(ctx context.Context, args atobarai.RegisterTransactionArgs) (*atobarai.Transaction, error) {
		return &atobarai.Transaction{AuthoriResult: atobarai.CreditCheckPassed}, nil
	}

	uc := newInitializeUseCase(configRepo, application.NewMockTransactionRecorder(), clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), initializeEvent())

	var broken *application.BrokenAppError
	require.ErrorAs(t, err, &broken)
}

func TestInitializeSession_RegisterFailureIsBrokenApp(t *testing.T) {
	configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
	recorder := application.NewMockTransactionRecorder()
	clients := atobarai.NewMockClientFactory()
	clients.Client.RegisterTransactionFn = func(ctx context.Context, args atobarai.RegisterTransactionArgs) (*atobarai.Transaction, error) {
		return nil, errors.New("gateway down")
	}

	uc := newInitializeUseCase(configRepo, recorder, clients)
	_, err := uc.Execute(context.Background(), testChannelContext(), initializeEvent())

	var broken *application.BrokenAppError
	require.ErrorAs(t, err, &broken)
	assert.Equal(t, 0, recorder.RecordCalls)
}

func TestGatewayInitialize(t *testing.T) {
	t.Run("advertises JPY for a configured channel", func(t *testing.T) {
		configRepo := &application.MockConfigRepo{AtobaraiConfig: testAtobaraiConfig()}
		uc := atobaraiapp.NewGatewayInitializeUseCase(configRepo, testLogger())

		resp, err := uc.Execute(context.Background(), testChannelContext(), saleor.PaymentGatewayInitializeSessionEvent{})

		require.NoError(t, err)
		assert.Equal(t, []string{"JPY"}, resp.Currencies)
	})

	t.Run("reports a channel without configuration", func(t *testing.T) {
		uc := atobaraiapp.NewGatewayInitializeUseCase(&application.MockConfigRepo{}, testLogger())

		_, err := uc.Execute(context.Background(), testChannelContext(), saleor.PaymentGatewayInitializeSessionEvent{})

		var notConfigured *application.AppIsNotConfiguredError
		require.ErrorAs(t, err, &notConfigured)
	})
}

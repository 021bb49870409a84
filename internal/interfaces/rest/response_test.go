package rest_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/interfaces/rest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"not configured maps to 400",
			application.NewAppIsNotConfiguredError("stripe is not configured for this channel", nil),
			http.StatusBadRequest,
			application.ErrCodeAppNotConfigured,
		},
		{
			"malformed request maps to 400",
			application.NewMalformedRequestError("unsupported actionType", nil),
			http.StatusBadRequest,
			application.ErrCodeMalformedRequest,
		},
		{
			"broken app maps to 500",
			application.NewBrokenAppError("stripe rejected the payment intent", errors.New("timeout")),
			http.StatusInternalServerError,
			application.ErrCodeBrokenApp,
		},
		{
			"unclassified errors map to 500",
			errors.New("unexpected"),
			http.StatusInternalServerError,
			application.ErrCodeBrokenApp,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rest.WriteError(w, tc.err, testLogger())

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body rest.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}

	t.Run("wrapped causes never leak into the response", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := application.NewBrokenAppError("failed to create the refund", errors.New("sk_test_123 unauthorized"))
		rest.WriteError(w, err, testLogger())

		var body rest.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "failed to create the refund", body.Error.Message)
		assert.NotContains(t, w.Body.String(), "sk_test_123")
	})
}

func TestNewTransactionEventResponse(t *testing.T) {
	resp := rest.NewTransactionEventResponse("pi_1", domain.AuthorizationSuccess{}, 100.50, nil)

	assert.Equal(t, "pi_1", resp.PSPReference)
	assert.Equal(t, "AUTHORIZATION_SUCCESS", resp.Result)
	assert.Equal(t, 100.50, resp.Amount)
	assert.Equal(t, []string{"CHARGE", "CANCEL"}, resp.Actions)
}

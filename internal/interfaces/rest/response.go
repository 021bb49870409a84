// Package rest exposes the Saleor webhook endpoints and maps use-case errors
// onto the wire.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

// TransactionEventResponse is the body Saleor expects from transaction sync
// webhooks.
type TransactionEventResponse struct {
	PSPReference string   `json:"pspReference,omitempty"`
	Result       string   `json:"result"`
	Amount       float64  `json:"amount"`
	Actions      []string `json:"actions,omitempty"`
	Data         any      `json:"data,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// NewTransactionEventResponse flattens a mapped result into the wire shape.
func NewTransactionEventResponse(pspReference string, result domain.TransactionResult, amount float64, data any) TransactionEventResponse {
	return TransactionEventResponse{
		PSPReference: pspReference,
		Result:       result.ResultCode(),
		Amount:       amount,
		Actions:      result.Actions(),
		Data:         data,
	}
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError maps a use-case error to an HTTP response. Not-configured and
// malformed requests are the caller's side of the contract; anything else is
// a server-side failure.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	code := application.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case application.ErrCodeAppNotConfigured, application.ErrCodeMalformedRequest:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("webhook failed", "code", code, "error", err)
	} else {
		logger.Warn("webhook rejected", "code", code, "error", err)
	}

	WriteJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: publicMessage(err)}})
}

// publicMessage strips wrapped causes so provider internals never leak into
// webhook responses.
func publicMessage(err error) string {
	var (
		notConfigured *application.AppIsNotConfiguredError
		malformed     *application.MalformedRequestError
		broken        *application.BrokenAppError
	)
	switch {
	case errors.As(err, &notConfigured):
		return notConfigured.Message
	case errors.As(err, &malformed):
		return malformed.Message
	case errors.As(err, &broken):
		return broken.Message
	default:
		return "internal error"
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

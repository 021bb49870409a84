package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/application/stripeapp"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/interfaces/rest"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
)

// SaleorAPIURLHeader carries the identity of the Saleor instance delivering
// the webhook.
const SaleorAPIURLHeader = "Saleor-Api-Url"

// StripeHandlers binds the Stripe app's use cases to their webhook paths.
type StripeHandlers struct {
	appID       string
	gatewayInit *stripeapp.GatewayInitializeUseCase
	initialize  *stripeapp.InitializeSessionUseCase
	process     *stripeapp.ProcessSessionUseCase
	charge      *stripeapp.ChargeRequestedUseCase
	cancel      *stripeapp.CancelationRequestedUseCase
	refund      *stripeapp.RefundRequestedUseCase
	logger      *slog.Logger
}

func NewStripeHandlers(
	appID string,
	gatewayInit *stripeapp.GatewayInitializeUseCase,
	initialize *stripeapp.InitializeSessionUseCase,
	process *stripeapp.ProcessSessionUseCase,
	charge *stripeapp.ChargeRequestedUseCase,
	cancel *stripeapp.CancelationRequestedUseCase,
	refund *stripeapp.RefundRequestedUseCase,
	logger *slog.Logger,
) *StripeHandlers {
	return &StripeHandlers{
		appID:       appID,
		gatewayInit: gatewayInit,
		initialize:  initialize,
		process:     process,
		charge:      charge,
		cancel:      cancel,
		refund:      refund,
		logger:      logger,
	}
}

func (h *StripeHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/webhooks/saleor/payment-gateway-initialize-session", h.PaymentGatewayInitializeSession)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-initialize-session", h.TransactionInitializeSession)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-process-session", h.TransactionProcessSession)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-charge-requested", h.TransactionChargeRequested)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-cancelation-requested", h.TransactionCancelationRequested)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-refund-requested", h.TransactionRefundRequested)
}

func (h *StripeHandlers) paymentContext(r *http.Request) (domain.PaymentContext, error) {
	apiURL := r.Header.Get(SaleorAPIURLHeader)
	if apiURL == "" {
		return domain.PaymentContext{}, application.NewMalformedRequestError("missing saleor-api-url header", nil)
	}
	return domain.PaymentContext{SaleorAPIURL: apiURL, AppID: h.appID}, nil
}

func (h *StripeHandlers) PaymentGatewayInitializeSession(w http.ResponseWriter, r *http.Request) {
	pc, err := h.paymentContext(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var event saleor.PaymentGatewayInitializeSessionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, application.NewMalformedRequestError("invalid event payload", err), h.logger)
		return
	}

	cc := domain.ChannelContext{PaymentContext: pc, ChannelID: event.SourceObject.Channel.ID}
	resp, err := h.gatewayInit.Execute(r.Context(), cc, event)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (h *StripeHandlers) TransactionInitializeSession(w http.ResponseWriter, r *http.Request) {
	pc, err := h.paymentContext(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var event saleor.TransactionInitializeSessionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, application.NewMalformedRequestError("invalid event payload", err), h.logger)
		return
	}

	cc := domain.ChannelContext{PaymentContext: pc, ChannelID: event.SourceObject.Channel.ID}
	resp, err := h.initialize.Execute(r.Context(), cc, event)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(
		resp.PSPReference, resp.Result, resp.Amount,
		map[string]any{"paymentIntent": resp.Data},
	))
}

func (h *StripeHandlers) TransactionProcessSession(w http.ResponseWriter, r *http.Request) {
	pc, err := h.paymentContext(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var event saleor.TransactionProcessSessionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, application.NewMalformedRequestError("invalid event payload", err), h.logger)
		return
	}

	cc := domain.ChannelContext{PaymentContext: pc, ChannelID: event.SourceObject.Channel.ID}
	resp, err := h.process.Execute(r.Context(), cc, event)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(
		resp.PSPReference, resp.Result, resp.Amount,
		map[string]any{"paymentIntent": resp.Data},
	))
}

func (h *StripeHandlers) TransactionChargeRequested(w http.ResponseWriter, r *http.Request) {
	pc, err := h.paymentContext(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var event saleor.TransactionChargeRequestedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, application.NewMalformedRequestError("invalid event payload", err), h.logger)
		return
	}

	resp, err := h.charge.Execute(r.Context(), pc, event)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(resp.PSPReference, resp.Result, resp.Amount, nil))
}

func (h *StripeHandlers) TransactionCancelationRequested(w http.ResponseWriter, r *http.Request) {
	pc, err := h.paymentContext(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var event saleor.TransactionCancelationRequestedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, application.NewMalformedRequestError("invalid event payload", err), h.logger)
		return
	}

	resp, err := h.cancel.Execute(r.Context(), pc, event)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(resp.PSPReference, resp.Result, resp.Amount, nil))
}

func (h *StripeHandlers) TransactionRefundRequested(w http.ResponseWriter, r *http.Request) {
	pc, err := h.paymentContext(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var event saleor.TransactionRefundRequestedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, application.NewMalformedRequestError("invalid event payload", err), h.logger)
		return
	}

	resp, err := h.refund.Execute(r.Context(), pc, event)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(resp.PSPReference, resp.Result, resp.Amount, nil))
}

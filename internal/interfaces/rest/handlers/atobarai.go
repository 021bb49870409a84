package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/application/atobaraiapp"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/interfaces/rest"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
)

// AtobaraiHandlers binds the NP Atobarai app's use cases to their webhook
// paths.
type AtobaraiHandlers struct {
	appID       string
	gatewayInit *atobaraiapp.GatewayInitializeUseCase
	initialize  *atobaraiapp.InitializeSessionUseCase
	cancel      *atobaraiapp.CancelationRequestedUseCase
	logger      *slog.Logger
}

func NewAtobaraiHandlers(
	appID string,
	gatewayInit *atobaraiapp.GatewayInitializeUseCase,
	initialize *atobaraiapp.InitializeSessionUseCase,
	cancel *atobaraiapp.CancelationRequestedUseCase,
	logger *slog.Logger,
) *AtobaraiHandlers {
	return &AtobaraiHandlers{
		appID:       appID,
		gatewayInit: gatewayInit,
		initialize:  initialize,
		cancel:      cancel,
		logger:      logger,
	}
}

func (h *AtobaraiHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/webhooks/saleor/payment-gateway-initialize-session", h.PaymentGatewayInitializeSession)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-initialize-session", h.TransactionInitializeSession)
	mux.HandleFunc("POST /api/webhooks/saleor/transaction-cancelation-requested", h.TransactionCancelationRequested)
}

func (h *AtobaraiHandlers) paymentContext(r *http.Request) (domain.PaymentContext, error) {
	apiURL := r.Header.Get(SaleorAPIURLHeader)
	if apiURL == "" {
		return domain.PaymentContext{}, application.NewMalformedRequestError("missing saleor-api-url header", nil)
	}
	return domain.PaymentContext{SaleorAPIURL: apiURL, AppID: h.appID}, nil
}

func (h *AtobaraiHandlers) PaymentGatewayInitializeSession(w http.ResponseWriter, r *http.Request) {
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

func (h *AtobaraiHandlers) TransactionInitializeSession(w http.ResponseWriter, r *http.Request) {
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

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(resp.PSPReference, resp.Result, resp.Amount, nil))
}

func (h *AtobaraiHandlers) TransactionCancelationRequested(w http.ResponseWriter, r *http.Request) {
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

	rest.WriteJSON(w, http.StatusOK, rest.NewTransactionEventResponse(resp.PSPReference, resp.Result, 0, nil))
}

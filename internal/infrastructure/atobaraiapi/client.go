// Package atobaraiapi implements the NP Atobarai transactions port against
// NP's REST gateway.
package atobaraiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/atobarai"
)

const (
	productionBaseURL = "https://ctcp.np-payment-gateway.com/v1"
	sandboxBaseURL    = "https://ctcp.ky-np.jp/v1"
)

// Factory builds per-channel clients sharing one HTTP client and circuit
// breaker.
type Factory struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewFactory(timeout time.Duration, logger *slog.Logger) *Factory {
	settings := gobreaker.Settings{
		Name:    "np-atobarai",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

func (f *Factory) ClientForConfig(cfg application.AtobaraiConfig) atobarai.TransactionsAPI {
	baseURL := productionBaseURL
	if cfg.Sandbox {
		baseURL = sandboxBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		cfg:        cfg,
		httpClient: f.httpClient,
		breaker:    f.breaker,
	}
}

// Client talks to one NP terminal. NP wraps both requests and responses in
// arrays because its API is batch-oriented; this client always sends batches
// of one.
type Client struct {
	baseURL    string
	cfg        application.AtobaraiConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

type registerRequest struct {
	Transactions []registerTransaction `json:"transactions"`
}

type registerTransaction struct {
	ShopTransactionID string            `json:"shop_transaction_id"`
	SettlementAmount  int64             `json:"settlement_amount"`
	Customer          atobarai.Customer `json:"customer"`
}

type cancelRequest struct {
	Transactions []cancelTransaction `json:"transactions"`
}

type cancelTransaction struct {
	NPTransactionID string `json:"np_transaction_id"`
}

type transactionResults struct {
	Results []atobarai.Transaction `json:"results"`
	Errors  []apiErrorBody         `json:"errors"`
}

type apiErrorBody struct {
	Codes []string `json:"codes"`
}

func (c *Client) RegisterTransaction(ctx context.Context, args atobarai.RegisterTransactionArgs) (*atobarai.Transaction, error) {
	body := registerRequest{Transactions: []registerTransaction{{
		ShopTransactionID: args.ShopTransactionID,
		SettlementAmount:  args.Amount,
		Customer:          args.Customer,
	}}}

	resp, err := sendRequest[registerRequest, transactionResults](c, ctx, http.MethodPost, c.baseURL+"/transactions", &body)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, &atobarai.APIError{Message: "np response contains no results"}
	}

	return &resp.Results[0], nil
}

func (c *Client) CancelTransaction(ctx context.Context, npTransactionID string) error {
	body := cancelRequest{Transactions: []cancelTransaction{{NPTransactionID: npTransactionID}}}

	_, err := sendRequest[cancelRequest, transactionResults](c, ctx, http.MethodPatch, c.baseURL+"/transactions/cancel", &body)
	return err
}

func sendRequest[Req any, Resp any](c *Client, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-NP-Terminal-Id", c.cfg.TerminalID)
		httpReq.SetBasicAuth(c.cfg.MerchantCode, c.cfg.SPCode)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var errResp transactionResults
			if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Errors) == 0 {
				return nil, &atobarai.APIError{
					StatusCode: resp.StatusCode,
					Message:    fmt.Sprintf("np returned status %d: %s", resp.StatusCode, string(body)),
				}
			}
			return nil, &atobarai.APIError{
				Codes:      errResp.Errors[0].Codes,
				StatusCode: resp.StatusCode,
				Message:    "np rejected the request",
			}
		}

		var npResp Resp
		if err := json.Unmarshal(body, &npResp); err != nil {
			return nil, fmt.Errorf("error decoding json response: %w", err)
		}
		return &npResp, nil
	})
	if err != nil {
		return nil, err
	}

	return res.(*Resp), nil
}

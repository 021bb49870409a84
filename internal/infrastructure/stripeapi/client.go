// Package stripeapi implements the Stripe payment-intents port on top of the
// official stripe-go SDK, with a shared circuit breaker in front of every
// call.
package stripeapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	stripego "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/stripe"
)

// Factory builds per-channel clients that all share one circuit breaker, so
// a Stripe outage observed through one channel's key protects the rest.
type Factory struct {
	breaker *gobreaker.CircuitBreaker
}

func NewFactory(logger *slog.Logger) *Factory {
	settings := gobreaker.Settings{
		Name:    "stripe",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Declines and other 4xx responses are answers, not outages.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if sErr, ok := err.(*stripego.Error); ok {
				return sErr.HTTPStatusCode < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Factory{breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (f *Factory) ClientForSecretKey(secretKey string) stripe.PaymentIntentsAPI {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api, breaker: f.breaker}
}

// Client is a thin typed wrapper over stripe-go. It converts SDK errors into
// *stripe.APIError so use cases never handle SDK types directly.
type Client struct {
	api     *client.API
	breaker *gobreaker.CircuitBreaker
}

func (c *Client) CreatePaymentIntent(ctx context.Context, args stripe.CreatePaymentIntentArgs) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{
		Params:   stripego.Params{Context: ctx},
		Amount:   stripego.Int64(args.Money.Amount),
		Currency: stripego.String(args.Money.Currency),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	if args.Flow == domain.FlowAuthorization {
		params.CaptureMethod = stripego.String(string(stripego.PaymentIntentCaptureMethodManual))
	}
	params.SetIdempotencyKey(args.IdempotencyKey)
	if args.StripeAccount != nil {
		params.SetStripeAccount(*args.StripeAccount)
	}
	for k, v := range args.Metadata {
		params.AddMetadata(k, v)
	}

	return c.intentCall(func() (*stripego.PaymentIntent, error) {
		return c.api.PaymentIntents.New(params)
	})
}

func (c *Client) GetPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{Params: stripego.Params{Context: ctx}}
	return c.intentCall(func() (*stripego.PaymentIntent, error) {
		return c.api.PaymentIntents.Get(id, params)
	})
}

func (c *Client) CapturePaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentCaptureParams{Params: stripego.Params{Context: ctx}}
	return c.intentCall(func() (*stripego.PaymentIntent, error) {
		return c.api.PaymentIntents.Capture(id, params)
	})
}

func (c *Client) CancelPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentCancelParams{Params: stripego.Params{Context: ctx}}
	return c.intentCall(func() (*stripego.PaymentIntent, error) {
		return c.api.PaymentIntents.Cancel(id, params)
	})
}

func (c *Client) CreateRefund(ctx context.Context, args stripe.CreateRefundArgs) (*stripego.Refund, error) {
	params := &stripego.RefundParams{
		Params:        stripego.Params{Context: ctx},
		PaymentIntent: stripego.String(args.PaymentIntentID),
		Amount:        stripego.Int64(args.Amount),
	}
	for k, v := range args.Metadata {
		params.AddMetadata(k, v)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.api.Refunds.New(params)
	})
	if err != nil {
		return nil, stripe.WrapError(err)
	}
	return res.(*stripego.Refund), nil
}

func (c *Client) intentCall(call func() (*stripego.PaymentIntent, error)) (*stripego.PaymentIntent, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		return nil, stripe.WrapError(err)
	}
	return res.(*stripego.PaymentIntent), nil
}

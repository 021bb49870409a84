package stripeapp

import (
	"context"
	"log/slog"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/saleor"
)

// GatewayInitializeUseCase answers payment-gateway-initialize-session: it
// hands the storefront the publishable key for the channel, or reports that
// the channel was never set up.
type GatewayInitializeUseCase struct {
	configRepo application.ConfigRepo
	logger     *slog.Logger
}

func NewGatewayInitializeUseCase(configRepo application.ConfigRepo, logger *slog.Logger) *GatewayInitializeUseCase {
	return &GatewayInitializeUseCase{configRepo: configRepo, logger: logger}
}

func (uc *GatewayInitializeUseCase) Execute(ctx context.Context, cc domain.ChannelContext, event saleor.PaymentGatewayInitializeSessionEvent) (*GatewayInitializeResponse, error) {
	cfg, err := uc.configRepo.GetStripeConfig(ctx, cc)
	if err != nil {
		uc.logger.Error("config lookup failed", "channel", cc.ChannelID, "error", err)
		return nil, application.NewBrokenAppError("failed to resolve app configuration", err)
	}
	if cfg == nil {
		return nil, application.NewAppIsNotConfiguredError("stripe is not configured for this channel", nil)
	}

	return &GatewayInitializeResponse{PublishableKey: cfg.PublishableKey}, nil
}

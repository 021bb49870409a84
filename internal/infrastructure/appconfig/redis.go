// Package appconfig stores per-channel provider configuration and vendor
// account mappings in redis. The configuration UI writes these documents;
// the webhook apps only read them.
package appconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

// Repo implements application.ConfigRepo and application.VendorResolver on a
// shared redis client.
type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func stripeConfigKey(cc domain.ChannelContext) string {
	return fmt.Sprintf("config:stripe:%s:%s:%s", cc.SaleorAPIURL, cc.AppID, cc.ChannelID)
}

func atobaraiConfigKey(cc domain.ChannelContext) string {
	return fmt.Sprintf("config:atobarai:%s:%s:%s", cc.SaleorAPIURL, cc.AppID, cc.ChannelID)
}

func vendorKey(pc domain.PaymentContext, vendorID string) string {
	return fmt.Sprintf("vendor:%s:%s:%s", pc.SaleorAPIURL, pc.AppID, vendorID)
}

func (r *Repo) GetStripeConfig(ctx context.Context, cc domain.ChannelContext) (*application.StripeConfig, error) {
	var cfg application.StripeConfig
	found, err := r.getJSON(ctx, stripeConfigKey(cc), &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (r *Repo) SetStripeConfig(ctx context.Context, cc domain.ChannelContext, cfg application.StripeConfig) error {
	return r.setJSON(ctx, stripeConfigKey(cc), cfg)
}

func (r *Repo) GetAtobaraiConfig(ctx context.Context, cc domain.ChannelContext) (*application.AtobaraiConfig, error) {
	var cfg application.AtobaraiConfig
	found, err := r.getJSON(ctx, atobaraiConfigKey(cc), &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (r *Repo) SetAtobaraiConfig(ctx context.Context, cc domain.ChannelContext, cfg application.AtobaraiConfig) error {
	return r.setJSON(ctx, atobaraiConfigKey(cc), cfg)
}

// vendorDoc is the stored shape of a marketplace vendor's account mapping.
type vendorDoc struct {
	StripeAccountID string `json:"stripe_account_id"`
}

// ResolveVendorForPayment looks up the vendor's connected account. An empty
// vendor id or an unknown vendor both mean the channel default applies, which
// is an absent resolution, not an error.
func (r *Repo) ResolveVendorForPayment(ctx context.Context, pc domain.PaymentContext, vendorID string) (*domain.VendorResolution, error) {
	if vendorID == "" {
		return nil, nil
	}

	var doc vendorDoc
	found, err := r.getJSON(ctx, vendorKey(pc, vendorID), &doc)
	if err != nil || !found {
		return nil, err
	}
	if doc.StripeAccountID == "" {
		return nil, nil
	}

	return &domain.VendorResolution{
		VendorID:          vendorID,
		ProviderAccountID: doc.StripeAccountID,
		Method:            domain.ResolutionVendorSpecific,
	}, nil
}

func (r *Repo) SetVendorAccount(ctx context.Context, pc domain.PaymentContext, vendorID, stripeAccountID string) error {
	return r.setJSON(ctx, vendorKey(pc, vendorID), vendorDoc{StripeAccountID: stripeAccountID})
}

func (r *Repo) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis GET %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decoding document at %s: %w", key, err)
	}
	return true, nil
}

func (r *Repo) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding document for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

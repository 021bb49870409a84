// Package domain defines the platform-level payment models shared by both
// provider apps.
package domain

// PaymentContext identifies which Saleor installation a webhook event belongs
// to. Config lookups and transaction records are namespaced by it.
type PaymentContext struct {
	SaleorAPIURL string
	AppID        string
}

// ChannelContext extends PaymentContext with the channel the event was issued
// for. Configuration is resolved per channel.
type ChannelContext struct {
	PaymentContext
	ChannelID string
}

// Package saleor models the slice of Saleor's sync webhook contract both
// provider apps consume.
package saleor

import "encoding/json"

// Channel identifies the sales channel an event was issued for.
type Channel struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// Action carries the requested amount and flow for transaction events.
type Action struct {
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	ActionType string  `json:"actionType"`
}

// BillingAddress is the subset of Saleor's address type the NP Atobarai
// credit check needs.
type BillingAddress struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	CompanyName    string `json:"companyName,omitempty"`
	StreetAddress1 string `json:"streetAddress1"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	Phone          string `json:"phone"`
}

// SourceObject is the checkout or order the payment belongs to. VendorID is
// populated from marketplace metadata when a vendor page is attached.
type SourceObject struct {
	Typename       string          `json:"__typename"`
	ID             string          `json:"id"`
	Channel        Channel         `json:"channel"`
	VendorID       string          `json:"vendorId,omitempty"`
	Email          string          `json:"email,omitempty"`
	BillingAddress *BillingAddress `json:"billingAddress,omitempty"`
}

// CheckoutRef and OrderRef appear on lifecycle events, where the channel
// hangs off the transaction's checkout or order rather than a source object.
type CheckoutRef struct {
	ID      string  `json:"id"`
	Channel Channel `json:"channel"`
}

type OrderRef struct {
	ID      string  `json:"id"`
	Channel Channel `json:"channel"`
}

// TransactionRef points at the Saleor transaction an event acts on.
type TransactionRef struct {
	ID           string       `json:"id"`
	PSPReference string       `json:"pspReference,omitempty"`
	Checkout     *CheckoutRef `json:"checkout,omitempty"`
	Order        *OrderRef    `json:"order,omitempty"`
}

// ChannelID returns the channel regardless of whether the transaction hangs
// off a checkout or an order.
func (t TransactionRef) ChannelID() string {
	switch {
	case t.Checkout != nil:
		return t.Checkout.Channel.ID
	case t.Order != nil:
		return t.Order.Channel.ID
	default:
		return ""
	}
}

// PaymentGatewayInitializeSessionEvent asks the app for the client-side
// configuration needed to mount the payment form.
type PaymentGatewayInitializeSessionEvent struct {
	Amount       float64      `json:"amount"`
	SourceObject SourceObject `json:"sourceObject"`
}

// TransactionInitializeSessionEvent asks the app to create the provider-side
// transaction.
type TransactionInitializeSessionEvent struct {
	IdempotencyKey string          `json:"idempotencyKey"`
	Action         Action          `json:"action"`
	Transaction    TransactionRef  `json:"transaction"`
	SourceObject   SourceObject    `json:"sourceObject"`
	Data           json.RawMessage `json:"data,omitempty"`
}

// TransactionProcessSessionEvent asks the app to re-check a transaction that
// was initialized earlier, typically after a client-side confirmation step.
type TransactionProcessSessionEvent struct {
	Action       Action          `json:"action"`
	Transaction  TransactionRef  `json:"transaction"`
	SourceObject SourceObject    `json:"sourceObject"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// TransactionChargeRequestedEvent asks the app to capture an authorization.
type TransactionChargeRequestedEvent struct {
	Action      Action         `json:"action"`
	Transaction TransactionRef `json:"transaction"`
}

// TransactionCancelationRequestedEvent asks the app to cancel a transaction.
type TransactionCancelationRequestedEvent struct {
	Transaction TransactionRef `json:"transaction"`
}

// TransactionRefundRequestedEvent asks the app to refund a charge.
type TransactionRefundRequestedEvent struct {
	Action      Action         `json:"action"`
	Transaction TransactionRef `json:"transaction"`
}

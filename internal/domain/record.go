package domain

// TransactionRecord is the durable mapping between a Saleor transaction and
// the provider-side resource created for it. It is written once, on the first
// successful provider call, and read by every later lifecycle event.
//
// ResolvedFlow is fixed at creation. Cancel, charge and refund handlers must
// read it from the record instead of re-deriving it from the event.
type TransactionRecord struct {
	SaleorTransactionID string
	ProviderPaymentID   string
	ResolvedFlow        TransactionFlow
	SaleorFlow          TransactionFlow
	PaymentMethod       string
}

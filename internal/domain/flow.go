package domain

import "fmt"

// TransactionFlow tells whether a transaction charges immediately or only
// authorizes funds for a later capture.
type TransactionFlow string

const (
	FlowCharge        TransactionFlow = "CHARGE"
	FlowAuthorization TransactionFlow = "AUTHORIZATION"
)

// ParseTransactionFlow validates the actionType field coming from Saleor.
func ParseTransactionFlow(s string) (TransactionFlow, error) {
	switch TransactionFlow(s) {
	case FlowCharge, FlowAuthorization:
		return TransactionFlow(s), nil
	default:
		return "", fmt.Errorf("unknown transaction flow %q", s)
	}
}

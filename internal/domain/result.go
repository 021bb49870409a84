package domain

// TransactionResult is the closed set of outcomes a use case can report back
// to Saleor. The unexported marker method keeps the set sealed: every variant
// lives in this file and response builders can switch over them exhaustively.
type TransactionResult interface {
	// ResultCode is the value Saleor expects in the "result" field of a
	// sync webhook response.
	ResultCode() string
	// Actions lists the follow-up transaction actions Saleor may offer.
	Actions() []string

	isTransactionResult()
}

type (
	// ChargeSuccess means funds are captured or are being captured.
	ChargeSuccess struct{}
	// AuthorizationSuccess means funds are reserved and wait for capture.
	AuthorizationSuccess struct{}
	// ChargeActionRequired means the client must complete an extra step,
	// such as a 3-D Secure challenge, before the charge can settle.
	ChargeActionRequired struct{}
	// AuthorizationActionRequired is the authorization-flow counterpart of
	// ChargeActionRequired.
	AuthorizationActionRequired struct{}
	// ChargeFailure is a terminal provider-side charge failure.
	ChargeFailure struct{}
	// AuthorizationFailure is a terminal provider-side authorization failure.
	AuthorizationFailure struct{}
	// CancelSuccess means the provider resource was canceled.
	CancelSuccess struct{}
	// CancelFailure means the provider refused or failed the cancelation.
	CancelFailure struct{}
	// RefundSuccess means the refund was accepted by the provider.
	RefundSuccess struct{}
	// RefundFailure means the provider refused or failed the refund.
	RefundFailure struct{}
)

func (ChargeSuccess) ResultCode() string               { return "CHARGE_SUCCESS" }
func (AuthorizationSuccess) ResultCode() string        { return "AUTHORIZATION_SUCCESS" }
func (ChargeActionRequired) ResultCode() string        { return "CHARGE_ACTION_REQUIRED" }
func (AuthorizationActionRequired) ResultCode() string { return "AUTHORIZATION_ACTION_REQUIRED" }
func (ChargeFailure) ResultCode() string               { return "CHARGE_FAILURE" }
func (AuthorizationFailure) ResultCode() string        { return "AUTHORIZATION_FAILURE" }
func (CancelSuccess) ResultCode() string               { return "CANCEL_SUCCESS" }
func (CancelFailure) ResultCode() string               { return "CANCEL_FAILURE" }
func (RefundSuccess) ResultCode() string               { return "REFUND_SUCCESS" }
func (RefundFailure) ResultCode() string               { return "REFUND_FAILURE" }

func (ChargeSuccess) Actions() []string               { return []string{"REFUND"} }
func (AuthorizationSuccess) Actions() []string        { return []string{"CHARGE", "CANCEL"} }
func (ChargeActionRequired) Actions() []string        { return nil }
func (AuthorizationActionRequired) Actions() []string { return nil }
func (ChargeFailure) Actions() []string               { return []string{"CHARGE"} }
func (AuthorizationFailure) Actions() []string        { return []string{"CANCEL"} }
func (CancelSuccess) Actions() []string               { return nil }
func (CancelFailure) Actions() []string               { return []string{"CANCEL"} }
func (RefundSuccess) Actions() []string               { return nil }
func (RefundFailure) Actions() []string               { return []string{"REFUND"} }

func (ChargeSuccess) isTransactionResult()               {}
func (AuthorizationSuccess) isTransactionResult()        {}
func (ChargeActionRequired) isTransactionResult()        {}
func (AuthorizationActionRequired) isTransactionResult() {}
func (ChargeFailure) isTransactionResult()               {}
func (AuthorizationFailure) isTransactionResult()        {}
func (CancelSuccess) isTransactionResult()               {}
func (CancelFailure) isTransactionResult()               {}
func (RefundSuccess) isTransactionResult()               {}
func (RefundFailure) isTransactionResult()               {}

// SuccessForFlow picks the success variant matching the resolved flow.
func SuccessForFlow(flow TransactionFlow) TransactionResult {
	if flow == FlowAuthorization {
		return AuthorizationSuccess{}
	}
	return ChargeSuccess{}
}

// ActionRequiredForFlow picks the action-required variant for the flow.
func ActionRequiredForFlow(flow TransactionFlow) TransactionResult {
	if flow == FlowAuthorization {
		return AuthorizationActionRequired{}
	}
	return ChargeActionRequired{}
}

// FailureForFlow picks the failure variant for the flow.
func FailureForFlow(flow TransactionFlow) TransactionResult {
	if flow == FlowAuthorization {
		return AuthorizationFailure{}
	}
	return ChargeFailure{}
}

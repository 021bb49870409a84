package stripe

import (
	stripego "github.com/stripe/stripe-go/v74"

	"github.com/stackpine/saleor-payment-apps/internal/domain"
)

// ResultFromIntentStatus folds a payment intent status into the closed result
// set for the resolved flow.
//
// succeeded and processing both count as success: funds are available or on
// their way and no client interaction is pending. requires_capture is the
// settled state of a manual-capture intent. The requires_* trio means the
// client still has work to do (confirmation, 3-D Secure, a new payment
// method). canceled is the only terminal failure an intent reports.
func ResultFromIntentStatus(status stripego.PaymentIntentStatus, flow domain.TransactionFlow) domain.TransactionResult {
	switch status {
	case stripego.PaymentIntentStatusSucceeded, stripego.PaymentIntentStatusProcessing:
		return domain.SuccessForFlow(flow)
	case stripego.PaymentIntentStatusRequiresCapture:
		return domain.AuthorizationSuccess{}
	case stripego.PaymentIntentStatusRequiresAction,
		stripego.PaymentIntentStatusRequiresConfirmation,
		stripego.PaymentIntentStatusRequiresPaymentMethod:
		return domain.ActionRequiredForFlow(flow)
	default:
		return domain.FailureForFlow(flow)
	}
}

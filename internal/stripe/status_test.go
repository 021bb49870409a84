package stripe_test

import (
	"testing"

	stripego "github.com/stripe/stripe-go/v74"
	"github.com/stretchr/testify/assert"

	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/stripe"
)

func TestResultFromIntentStatus(t *testing.T) {
	cases := []struct {
		name   string
		status stripego.PaymentIntentStatus
		flow   domain.TransactionFlow
		want   string
	}{
		{"succeeded charge", stripego.PaymentIntentStatusSucceeded, domain.FlowCharge, "CHARGE_SUCCESS"},
		{"succeeded authorization", stripego.PaymentIntentStatusSucceeded, domain.FlowAuthorization, "AUTHORIZATION_SUCCESS"},
		{"processing counts as success", stripego.PaymentIntentStatusProcessing, domain.FlowCharge, "CHARGE_SUCCESS"},
		{"requires_capture is an authorization success", stripego.PaymentIntentStatusRequiresCapture, domain.FlowAuthorization, "AUTHORIZATION_SUCCESS"},
		{"requires_action charge", stripego.PaymentIntentStatusRequiresAction, domain.FlowCharge, "CHARGE_ACTION_REQUIRED"},
		{"requires_confirmation authorization", stripego.PaymentIntentStatusRequiresConfirmation, domain.FlowAuthorization, "AUTHORIZATION_ACTION_REQUIRED"},
		{"requires_payment_method charge", stripego.PaymentIntentStatusRequiresPaymentMethod, domain.FlowCharge, "CHARGE_ACTION_REQUIRED"},
		{"canceled charge fails", stripego.PaymentIntentStatusCanceled, domain.FlowCharge, "CHARGE_FAILURE"},
		{"canceled authorization fails", stripego.PaymentIntentStatusCanceled, domain.FlowAuthorization, "AUTHORIZATION_FAILURE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := stripe.ResultFromIntentStatus(tc.status, tc.flow)
			assert.Equal(t, tc.want, result.ResultCode())
		})
	}
}

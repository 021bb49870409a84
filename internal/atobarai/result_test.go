package atobarai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackpine/saleor-payment-apps/internal/atobarai"
)

func TestResultFromCreditCheck(t *testing.T) {
	cases := []struct {
		name          string
		authoriResult string
		want          string
	}{
		{"passed", atobarai.CreditCheckPassed, "CHARGE_SUCCESS"},
		{"pending review", atobarai.CreditCheckPending, "CHARGE_ACTION_REQUIRED"},
		{"before review", atobarai.CreditCheckBeforeReview, "CHARGE_ACTION_REQUIRED"},
		{"failed", atobarai.CreditCheckFailed, "CHARGE_FAILURE"},
		{"unknown result fails closed", "99", "CHARGE_FAILURE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := atobarai.ResultFromCreditCheck(tc.authoriResult)
			assert.Equal(t, tc.want, result.ResultCode())
		})
	}
}

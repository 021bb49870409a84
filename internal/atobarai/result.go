package atobarai

import "github.com/stackpine/saleor-payment-apps/internal/domain"

// ResultFromCreditCheck folds NP's authori_result into the closed result set.
// NP has no authorize/capture split, so every outcome is a charge variant.
// Pending and before-review both mean the merchant review is still open and
// the buyer may be asked for more information.
func ResultFromCreditCheck(authoriResult string) domain.TransactionResult {
	switch authoriResult {
	case CreditCheckPassed:
		return domain.ChargeSuccess{}
	case CreditCheckPending, CreditCheckBeforeReview:
		return domain.ChargeActionRequired{}
	default:
		return domain.ChargeFailure{}
	}
}

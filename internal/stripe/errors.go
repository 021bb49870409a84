package stripe

import (
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v74"
)

// APIError is the single error shape the rest of the app sees for failed
// Stripe calls. Code and Type are copied from Stripe's error body when one
// was returned; transport failures leave them empty.
type APIError struct {
	Code    string
	Type    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe error [%s/%s]: %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("stripe error: %s", e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// WrapError normalizes any error coming out of the stripe-go SDK.
func WrapError(err error) *APIError {
	var sErr *stripego.Error
	if errors.As(err, &sErr) {
		return &APIError{
			Code:    string(sErr.Code),
			Type:    string(sErr.Type),
			Message: sErr.Msg,
			Err:     err,
		}
	}
	return &APIError{Message: err.Error(), Err: err}
}

// IsAPIError reports whether err is (or wraps) a Stripe API error.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

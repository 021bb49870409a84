package atobarai

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a failed call against the NP gateway. NP reports machine codes
// in a list; transport failures leave Codes empty.
type APIError struct {
	Codes      []string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if len(e.Codes) > 0 {
		return fmt.Sprintf("np error [%s]: %s (status: %d)", strings.Join(e.Codes, ","), e.Message, e.StatusCode)
	}
	return fmt.Sprintf("np error: %s", e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsAPIError reports whether err is (or wraps) an NP API error.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

package dapnet

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every error returned from the outgoing
	// constructors. Such errors never reach the network.
	ErrValidation = errors.New("validation error")

	ErrTextRequired = fmt.Errorf("%w: text must be set", ErrValidation)
	ErrTextTooLong  = fmt.Errorf("%w: text must be %d characters or less", ErrValidation, MaxTextLength)

	// ErrUnknownToken is returned when the API sends an enum value this
	// package does not know.
	ErrUnknownToken = errors.New("unknown token")
)

// APIError is returned when the API answers with a status other than 2xx or 404.
type APIError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error rc=%d: %s %s", e.StatusCode, e.Method, e.URL)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

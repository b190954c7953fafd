package shared

import (
	"errors"
	"fmt"
)

// RequestError is used when we want a specific error message and StatusCode.
// Routers expect the wrapped Err message to be safe to show to the caller.
// When the caller should see a generic message but the logs need more
// detail, wrap the RequestError with fmt.Errorf and %w instead.
type RequestError struct {
	StatusCode int
	Err        error
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status %d: err %v", r.StatusCode, r.Err)
}

func (r *RequestError) Unwrap() error {
	return r.Err
}

var (
	ErrMissingAuth    = &RequestError{Err: errors.New("missing session"), StatusCode: 401}
	ErrInvalidFormat  = &RequestError{Err: errors.New("invalid authentication format"), StatusCode: 401}
	ErrUnauthorized   = &RequestError{Err: errors.New("unauthorized"), StatusCode: 401}
	ErrSessionExpired = &RequestError{Err: errors.New("session expired"), StatusCode: 401}

	ErrMalformedParameters = &RequestError{Err: errors.New("malformed path parameters"), StatusCode: 400}

	ErrUpstreamUnavailable = &RequestError{Err: errors.New("upstream unavailable"), StatusCode: 502}

	ErrInternalServerError = &RequestError{Err: errors.New("internal server error"), StatusCode: 500}
)

// AsRequestError finds the first RequestError in err's chain, falling back to
// ErrInternalServerError.
func AsRequestError(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return ErrInternalServerError
}

package domain

import "errors"

// NetworkErrorKind distinguishes transport-layer failures.
type NetworkErrorKind int

const (
	NetworkNoConnection NetworkErrorKind = iota
	NetworkTimeout
	NetworkTransport
)

// NetworkError is a transport-layer fault. Recoverable by cache fallback.
type NetworkError struct {
	Kind    NetworkErrorKind
	Message string
}

func (e *NetworkError) Error() string { return e.Message }

// APIError is a protocol-layer fault: a non-2xx status (StatusCode > 0) or a
// payload that could not be decoded (StatusCode == 0).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// IsNetworkError reports whether err is (or wraps) a transport-layer fault.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is (or wraps) a protocol-layer fault.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

package market

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportFailure indicates a provider call failed (network, status or decode error)
	ErrTransportFailure = errors.New("transport failure")

	// ErrDataUnavailable indicates a required input for a ranking could not be obtained
	ErrDataUnavailable = errors.New("data unavailable")
)

// TransportError describes a failed provider round trip
type TransportError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func NewTransportError(endpoint string, statusCode int, err error) *TransportError {
	return &TransportError{Endpoint: endpoint, StatusCode: statusCode, Err: err}
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrTransportFailure, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrTransportFailure, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransportFailure}
	}
	return []error{ErrTransportFailure, e.Err}
}

// UnavailableError carries the short, user-facing reason a ranking or
// search could not complete
type UnavailableError struct {
	Reason string
	Err    error
}

func NewUnavailableError(reason string, err error) *UnavailableError {
	return &UnavailableError{Reason: reason, Err: err}
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDataUnavailable, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDataUnavailable, e.Reason)
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataUnavailable}
	}
	return []error{ErrDataUnavailable, e.Err}
}

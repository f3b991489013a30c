package entities

import (
	"errors"
	"fmt"
)

// Provider failure kinds. Match them with errors.Is on any error returned by a gateway.
var (
	ErrMissingCredentials         = errors.New("missing provider credentials")
	ErrUpstreamHTTP               = errors.New("upstream http error")
	ErrIncompleteProviderResponse = errors.New("incomplete provider response")
	ErrGatewayTimeout             = errors.New("provider timeout")
)

type GatewayError struct {
	Kind       error
	Op         string
	StatusCode int
	Err        error
}

func NewGatewayError(kind error, op string, statusCode int, err error) *GatewayError {
	return &GatewayError{Kind: kind, Op: op, StatusCode: statusCode, Err: err}
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GatewayError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsFallbackable tells whether another call path may be tried after err.
// An incomplete response means the provider contract was broken and is never retried.
func IsFallbackable(err error) bool {
	return errors.Is(err, ErrUpstreamHTTP) || errors.Is(err, ErrGatewayTimeout) || errors.Is(err, ErrMissingCredentials)
}

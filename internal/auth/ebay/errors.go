package ebay

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned before any network call when the caller
// supplied no authorization code.
var ErrInvalidRequest = errors.New("missing authorization code")

// ErrorKind classifies a failed exchange.
type ErrorKind int

const (
	// Rejected means the endpoint answered with a non-2xx status.
	Rejected ErrorKind = iota + 1
	// Malformed means a 2xx answer without an access_token.
	Malformed
	// Transport covers timeouts and network failures.
	Transport
)

func (k ErrorKind) String() string {
	switch k {
	case Rejected:
		return "upstream_rejected"
	case Malformed:
		return "upstream_malformed"
	case Transport:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// ExchangeError is a failed authorization-code exchange. Body is the verbatim
// response body for Rejected, Payload the decoded response for Malformed.
type ExchangeError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Payload    map[string]interface{}
	Err        error
}

func (e *ExchangeError) Error() string {
	switch e.Kind {
	case Rejected:
		return fmt.Sprintf("token exchange rejected (%d): %s", e.StatusCode, e.Body)
	case Malformed:
		return "token exchange response missing access_token"
	default:
		return fmt.Sprintf("token exchange transport failure: %v", e.Err)
	}
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// AsExchangeError reports whether err carries an *ExchangeError.
func AsExchangeError(err error) (*ExchangeError, bool) {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr, true
	}
	return nil, false
}

package sdk

import "errors"

// Sentinel errors mirroring the API error codes.
// Use errors.Is() to check.
var (
	// ErrInvalidArgument signals a rejected query, threshold, or payload.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedSource signals an unknown source selector.
	ErrUnsupportedSource = errors.New("unsupported source")
	// ErrDownstreamUnavailable signals a failed or timed-out provider call.
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
	// ErrDownstreamContractViolation signals an unparseable provider response.
	ErrDownstreamContractViolation = errors.New("downstream contract violation")
	// ErrUnauthorized signals a missing or invalid API key.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the structured error body returned by the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return "fuzzdex: " + e.Code + ": " + e.Message
}

// Unwrap maps the API error code onto a sentinel for errors.Is checks.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "invalid_argument", "bad_request":
		return ErrInvalidArgument
	case "unsupported_source":
		return ErrUnsupportedSource
	case "downstream_unavailable":
		return ErrDownstreamUnavailable
	case "downstream_contract_violation":
		return ErrDownstreamContractViolation
	case "unauthorized":
		return ErrUnauthorized
	default:
		return nil
	}
}

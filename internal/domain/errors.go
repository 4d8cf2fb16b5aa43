package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed query, threshold, or payload.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedSource signals an unknown search source selector.
	ErrUnsupportedSource = errors.New("unsupported source")
	// ErrDownstreamUnavailable signals a failed or timed-out provider call.
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
	// ErrDownstreamContractViolation signals an unparseable provider response.
	ErrDownstreamContractViolation = errors.New("downstream contract violation")
)

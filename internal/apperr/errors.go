// Package apperr holds the error kinds surfaced by the connector. Every typed
// error matches its sentinel with errors.Is, so callers can branch on the kind
// without caring about the details.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrAuth             = errors.New("upstream rejected the API token")
	ErrUpstream         = errors.New("upstream request failed")
	ErrMalformedSeed    = errors.New("malformed seed")
	ErrInvalidCondition = errors.New("invalid condition")
)

// ConfigurationError reports a required setting that is missing or empty.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s must be specified", e.Field)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// AuthError is returned when the upstream answers 403.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%d response means the API token is invalid", e.StatusCode)
}

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// UpstreamError covers any other failed upstream call. StatusCode is zero when
// no HTTP response was received or the body could not be decoded.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("request failed. Response code: %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("request failed. Response code: %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	default:
		return "request failed"
	}
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedSeedError is returned when the seeds sent by the client cannot be
// used: no seed at all, or a seed without a property the operation needs.
type MalformedSeedError struct {
	Reason string
}

func (e *MalformedSeedError) Error() string {
	return "malformed seed: " + e.Reason
}

func (e *MalformedSeedError) Is(target error) bool { return target == ErrMalformedSeed }

// InvalidConditionError is returned when a search condition names a field that
// cannot be placed in a query.
type InvalidConditionError struct {
	FieldID string
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid condition field %q", e.FieldID)
}

func (e *InvalidConditionError) Is(target error) bool { return target == ErrInvalidCondition }

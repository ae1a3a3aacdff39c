package voice

import "errors"

// UnavailableMessage is the uniform message for network-class provider
// failures, so callers can show a generic retry-later response instead of a
// backend diagnostic.
const UnavailableMessage = "speech service temporarily unavailable, try again later"

// ValidationError reports a problem with caller input. It is never wrapped
// and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ProviderError reports a backend or environment failure: an HTTP error from
// a speech vendor, a missing local engine, a transcoding failure, or any
// unexpected internal fault. The original cause, when present, is preserved
// for diagnostics via Unwrap.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Cause }

// NewProviderError creates a ProviderError without a cause.
func NewProviderError(msg string) *ProviderError {
	return &ProviderError{Message: msg}
}

// WrapProviderError creates a ProviderError preserving the original cause.
func WrapProviderError(msg string, cause error) *ProviderError {
	return &ProviderError{Message: msg, Cause: cause}
}

// UnavailableError creates the network-class ProviderError with the fixed
// retry-later message.
func UnavailableError(cause error) *ProviderError {
	return &ProviderError{Message: UnavailableMessage, Cause: cause}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsProvider reports whether err is (or wraps) a ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

package internal

import "fmt"

var (
	ErrMissingName        = &ValidationError{Reason: "missing name"}
	ErrMissingContactInfo = &ValidationError{Reason: "missing contact info"}
	ErrInvalidPaymentData = &ValidationError{Reason: "invalid payment data"}
)

// ValidationError reports a required field missing from the caller's input.
// It is never retried and always surfaces to the caller unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request data: " + e.Reason
}

// ProviderError carries the payment provider's rejection detail (declined
// card, fraud block, provider outage). The charge is not retried.
type ProviderError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment failed: %s", e.Message)
	}
	return fmt.Sprintf("payment failed: provider returned status %d", e.StatusCode)
}

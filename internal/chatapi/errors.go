package chatapi

import (
	"fmt"

	app_errors "ragchat/client/internal/errors"
)

// ProviderError is returned when a direct LLM provider call fails. A zero
// StatusCode means the request never produced an HTTP response (transport
// failure).
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("provider request failed: %s", e.Message)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error { return app_errors.ErrProvider }

// BackendUnavailableError is returned when the proxied backend cannot be
// reached or replies with a non-success status. UserMessage is a localized
// string safe to show to the end user; the technical detail stays in Err
// and is only logged.
type BackendUnavailableError struct {
	UserMessage string
	Err         error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("backend unavailable: %v", e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return app_errors.ErrBackendUnavailable }

package service

import (
	"context"
	"log/slog"
	"sync"

	"ragchat/client/internal/chatapi"
)

// Localized strings surfaced to the user by the request-state wrapper. The
// underlying error detail is logged, never returned to the caller.
const (
	sendErrorMessage    = "Произошла ошибка при отправке сообщения"
	sendFallbackMessage = "Извините, произошла ошибка. Попробуйте еще раз."
)

// GenerationDefaults are applied to every request a wrapper sends.
type GenerationDefaults struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// RequestState tracks the in-flight and error status of a single Sender
// invocation. Each instance owns its own fields, so overlapping sends from
// separate instances do not interfere.
//
// Send deliberately swallows the failure from its return value: the caller
// always receives a displayable string, and the error detail is observable
// only through Err. Callers that need the distinction must check Err after
// the call settles.
type RequestState struct {
	sender   chatapi.Sender
	defaults GenerationDefaults

	mu      sync.Mutex
	loading bool
	errMsg  string
}

func NewRequestState(sender chatapi.Sender, defaults GenerationDefaults) *RequestState {
	return &RequestState{sender: sender, defaults: defaults}
}

// Send invokes the backend and returns the response text, or the localized
// fallback string when the call fails. Loading is true strictly for the
// duration of the call and is cleared on every exit path.
func (r *RequestState) Send(ctx context.Context, message string) string {
	r.mu.Lock()
	r.loading = true
	r.errMsg = ""
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.loading = false
		r.mu.Unlock()
	}()

	resp, err := r.sender.SendMessage(ctx, &chatapi.ChatRequest{
		Message:     message,
		Model:       r.defaults.Model,
		Temperature: r.defaults.Temperature,
		MaxTokens:   r.defaults.MaxTokens,
	})
	if err != nil {
		slog.Error("Message send failed", "error", err)
		r.mu.Lock()
		r.errMsg = sendErrorMessage
		r.mu.Unlock()
		return sendFallbackMessage
	}

	return resp.Response
}

// Loading reports whether a send is currently in flight.
func (r *RequestState) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the localized message for the most recent failure, or ""
// when the last call succeeded (or none was made).
func (r *RequestState) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

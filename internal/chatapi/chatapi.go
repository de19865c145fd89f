package chatapi

import (
	"context"
	"fmt"

	"ragchat/client/internal/config"
)

// ChatRequest carries one user message plus optional generation parameters.
type ChatRequest struct {
	Message     string  `json:"message"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// Usage reports token accounting for a completed request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the uniform success shape every backend produces.
type ChatResponse struct {
	Response string   `json:"response"`
	Model    string   `json:"model,omitempty"`
	Usage    *Usage   `json:"usage,omitempty"`
	Sources  []string `json:"sources,omitempty"`
}

// Sender is the capability every backend strategy implements. Backends are
// interchangeable: a failure never escapes as anything other than an error
// value classified by this package, and a success always carries the
// generated text.
type Sender interface {
	SendMessage(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// New selects a backend strategy by configuration.
func New(cfg *config.Config) (Sender, error) {
	switch cfg.ChatBackend {
	case config.BackendMock, "":
		return NewMockSender(), nil
	case config.BackendOpenAI:
		return NewOpenAISender(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.MainModel), nil
	case config.BackendProxy:
		return NewProxySender(cfg.BackendURL), nil
	}
	return nil, fmt.Errorf("unknown chat backend %q", cfg.ChatBackend)
}

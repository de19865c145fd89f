package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BackendFallbackMessage is the localized text shown to the user when the
// proxied backend cannot be reached. The technical detail is logged, never
// shown verbatim.
const BackendFallbackMessage = "Извините, не удалось подключиться к серверу. Пожалуйста, убедитесь, что бэкенд запущен."

// proxySender forwards the raw user message to the configured backend's
// chat endpoint.
type proxySender struct {
	client  *http.Client
	baseURL string
}

func NewProxySender(baseURL string) Sender {
	return &proxySender{
		client:  &http.Client{},
		baseURL: baseURL,
	}
}

type proxyRequest struct {
	Message string `json:"message"`
}

// proxyReply tolerates both reply shapes the backend is known to produce:
// some versions answer with "message", others with "response".
type proxyReply struct {
	Message  string   `json:"message"`
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

func (s *proxySender) SendMessage(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(proxyRequest{Message: req.Message})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &BackendUnavailableError{UserMessage: BackendFallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &BackendUnavailableError{
			UserMessage: BackendFallbackMessage,
			Err:         fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var reply proxyReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &BackendUnavailableError{
			UserMessage: BackendFallbackMessage,
			Err:         fmt.Errorf("could not decode backend reply: %w", err),
		}
	}

	text := reply.Message
	if text == "" {
		text = reply.Response
	}
	if text == "" {
		text = "No response from backend"
	}

	return &ChatResponse{
		Response: text,
		Model:    req.Model,
		Sources:  reply.Sources,
	}, nil
}

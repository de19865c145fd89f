package chatapi

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// openAISender issues a single synchronous chat completion request against
// an OpenAI-compatible endpoint.
type openAISender struct {
	client       *openai.Client
	defaultModel string
}

// NewOpenAISender creates the direct provider backend. An empty baseURL
// keeps the provider's default endpoint; setting it allows pointing the
// client at a compatible server (or a test server).
func NewOpenAISender(apiKey, baseURL, defaultModel string) Sender {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &openAISender{
		client:       openai.NewClientWithConfig(clientConfig),
		defaultModel: defaultModel,
	}
}

func (s *openAISender) SendMessage(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, &ProviderError{StatusCode: reqErr.HTTPStatusCode, Message: err.Error()}
		}
		return nil, &ProviderError{Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Message: "provider returned no completion choices"}
	}

	return &ChatResponse{
		Response: resp.Choices[0].Message.Content,
		Model:    resp.Model,
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

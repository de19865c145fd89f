package chatapi

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Canned assistant replies used by the mock backend.
var mockResponses = []string{
	"Это отличный вопрос! Я AI-ассистент и готов помочь вам с различными задачами. Что именно вас интересует?",
	"Понимаю ваш запрос. Могу предоставить подробную информацию по этой теме. Давайте разберем это пошагово.",
	"Интересный вопрос! Позвольте мне объяснить это подробнее. Есть несколько важных аспектов, которые стоит рассмотреть.",
	"Спасибо за вопрос! Это важная тема, и я готов поделиться своими знаниями. Вот что я могу рассказать...",
	"Отлично! Давайте разберем это подробно. Я постараюсь дать вам максимально полезный и точный ответ.",
	"Понимаю, что вас интересует эта тема. Позвольте мне предоставить вам структурированный и понятный ответ.",
	"Это важный вопрос, который требует детального рассмотрения. Вот мой анализ ситуации...",
	"Спасибо за обращение! Я готов помочь вам разобраться в этом вопросе. Начнем с основ...",
}

const mockDefaultModel = "gpt-3.5-turbo"

// mockSender simulates a provider without any network I/O: a randomized
// delay in the 1-3 second range, then one canned reply echoing the
// original question. Token usage is the usual len/4 approximation, not a
// real tokenizer count.
type mockSender struct {
	mu       sync.Mutex // rand.Rand is not safe for concurrent use
	rng      *rand.Rand
	minDelay time.Duration
	maxDelay time.Duration
}

func NewMockSender() Sender {
	return &mockSender{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		minDelay: 1 * time.Second,
		maxDelay: 3 * time.Second,
	}
}

func (s *mockSender) SendMessage(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	s.mu.Lock()
	delay := s.minDelay + time.Duration(s.rng.Int63n(int64(s.maxDelay-s.minDelay)+1))
	reply := mockResponses[s.rng.Intn(len(mockResponses))]
	s.mu.Unlock()

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	model := req.Model
	if model == "" {
		model = mockDefaultModel
	}

	return &ChatResponse{
		Response: fmt.Sprintf("%s\n\nВаш вопрос: \"%s\"", reply, req.Message),
		Model:    model,
		Usage: &Usage{
			PromptTokens:     len(req.Message) / 4,
			CompletionTokens: len(reply) / 4,
			TotalTokens:      (len(req.Message) + len(reply)) / 4,
		},
	}, nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ragchat/client/internal/chatapi"
	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/model"
	"ragchat/client/internal/session"
)

// ChatService orchestrates the send-message flow: it appends the user's
// message to the chat, obtains a reply through the configured backend and
// appends the assistant's message.
type ChatService struct {
	store    *session.Store
	sender   chatapi.Sender
	defaults GenerationDefaults
}

func NewChatService(store *session.Store, sender chatapi.Sender, defaults GenerationDefaults) *ChatService {
	return &ChatService{store: store, sender: sender, defaults: defaults}
}

// SendMessage runs one conversation turn in the given chat. The returned
// message always carries displayable text: on a backend failure it holds
// the localized fallback string, and the accompanying errMsg (otherwise
// empty) holds the localized failure message. An unknown chat id returns
// ErrNotFound before anything is sent.
func (s *ChatService) SendMessage(ctx context.Context, chatID, content string) (*model.Message, string, error) {
	if s.store.GetChat(chatID) == nil {
		return nil, "", app_errors.ErrNotFound
	}

	userMessage := model.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Role:      model.RoleUser,
		Timestamp: time.Now(),
	}
	if !s.store.AddMessage(chatID, userMessage) {
		// Chat disappeared between the existence check and the append.
		return nil, "", app_errors.ErrNotFound
	}

	// One wrapper per call: concurrent sends must not share loading/error state.
	state := NewRequestState(s.sender, s.defaults)
	text := state.Send(ctx, content)

	assistantMessage := model.Message{
		ID:        uuid.NewString(),
		Content:   text,
		Role:      model.RoleAssistant,
		Timestamp: time.Now(),
	}
	if !s.store.AddMessage(chatID, assistantMessage) {
		slog.Warn("Chat deleted while awaiting reply, dropping assistant message", "chat_id", chatID)
	}

	return &assistantMessage, state.Err(), nil
}

package interfaces

import (
	"context"

	"ragchat/client/internal/model"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ChatService defines the contract for the send-message flow.
type ChatService interface {
	SendMessage(ctx context.Context, chatID, content string) (*model.Message, string, error)
}

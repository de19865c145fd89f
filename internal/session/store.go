package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ragchat/client/internal/model"
)

// DefaultTitle is the placeholder title every new chat starts with. It is
// replaced by a derived title once the first user message arrives.
const DefaultTitle = "New chat"

// titleLimit is the maximum number of runes taken from the first user
// message when deriving a chat title.
const titleLimit = 50

// Store is the single authoritative owner of chats, projects and the
// current selection. All state is memory-resident and lost on restart.
//
// Mutations referencing an unknown chat id are silent no-ops; they report
// the miss through their boolean return so tests and callers that care can
// observe it, but nothing is raised.
type Store struct {
	mu        sync.RWMutex
	chats     []*model.Chat // most-recent-created first
	projects  []model.Project
	currentID string // empty means no selection

	now func() time.Time // swappable clock for tests
}

// NewStore creates a store seeded with the given projects.
func NewStore(projects []model.Project) *Store {
	return &Store{
		projects: projects,
		now:      time.Now,
	}
}

// DefaultProjects returns the fixed project set the application ships with.
func DefaultProjects() []model.Project {
	return []model.Project{
		{ID: "work", Name: "Work", Icon: "💼", Color: "blue"},
		{ID: "life", Name: "Life", Icon: "🌱", Color: "green"},
		{ID: "money", Name: "Money", Icon: "💰", Color: "yellow"},
		{ID: "ai", Name: "Ai", Icon: "🤖", Color: "purple"},
	}
}

// CreateChat creates an empty chat, inserts it at the front of the
// collection and makes it the current selection. It always succeeds and
// returns the new chat's id. An empty projectID leaves the chat unfiled.
func (s *Store) CreateChat(projectID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	chat := &model.Chat{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Messages:  []model.Message{},
		CreatedAt: now,
		UpdatedAt: now,
		ProjectID: projectID,
	}
	s.chats = append([]*model.Chat{chat}, s.chats...)
	s.currentID = chat.ID
	return chat.ID
}

// UpdateChatTitle replaces the chat's title and bumps its update time.
// It reports whether the chat was found; an unknown id is a no-op.
func (s *Store) UpdateChatTitle(chatID, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.find(chatID)
	if chat == nil {
		return false
	}
	chat.Title = title
	chat.UpdatedAt = s.now()
	return true
}

// AddMessage appends a message to the chat. If this is the chat's first
// message and its role is user, the chat's title is derived from the
// message content (truncated to 50 runes with a trailing "..." when the
// content was longer). It reports whether the chat was found.
func (s *Store) AddMessage(chatID string, msg model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.find(chatID)
	if chat == nil {
		return false
	}
	if len(chat.Messages) == 0 && msg.Role == model.RoleUser {
		chat.Title = deriveTitle(msg.Content)
	}
	chat.Messages = append(chat.Messages, msg)
	chat.UpdatedAt = s.now()
	return true
}

// DeleteChat removes the chat from the collection. Deleting the currently
// selected chat clears the selection. Deleting an unknown id is a no-op.
func (s *Store) DeleteChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, chat := range s.chats {
		if chat.ID == chatID {
			s.chats = append(s.chats[:i], s.chats[i+1:]...)
			if s.currentID == chatID {
				s.currentID = ""
			}
			return
		}
	}
}

// GetChat returns a copy of the chat, or nil if the id is unknown.
func (s *Store) GetChat(chatID string) *model.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat := s.find(chatID)
	if chat == nil {
		return nil
	}
	return copyChat(chat)
}

// Chats returns a snapshot of all chats in collection order
// (most-recently-created first; no re-sort is performed on read).
func (s *Store) Chats() []*model.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Chat, 0, len(s.chats))
	for _, chat := range s.chats {
		out = append(out, copyChat(chat))
	}
	return out
}

// ListChatsByProject returns the chats filed under the given project,
// preserving collection order.
func (s *Store) ListChatsByProject(projectID string) []*model.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Chat
	for _, chat := range s.chats {
		if chat.ProjectID == projectID {
			out = append(out, copyChat(chat))
		}
	}
	return out
}

// Projects returns the seeded project set.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// SelectChat makes the chat the current selection. It reports whether the
// chat was found; an unknown id leaves the selection unchanged.
func (s *Store) SelectChat(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(chatID) == nil {
		return false
	}
	s.currentID = chatID
	return true
}

// CurrentChatID returns the id of the currently selected chat, or "" when
// nothing is selected.
func (s *Store) CurrentChatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// find must be called with the lock held.
func (s *Store) find(chatID string) *model.Chat {
	for _, chat := range s.chats {
		if chat.ID == chatID {
			return chat
		}
	}
	return nil
}

func copyChat(chat *model.Chat) *model.Chat {
	cp := *chat
	cp.Messages = make([]model.Message, len(chat.Messages))
	copy(cp.Messages, chat.Messages)
	return &cp
}

// deriveTitle shortens the first user message into a chat title.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}

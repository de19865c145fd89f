// The `_test` suffix creates a "black box" test package: only the api
// package's exported identifiers are visible here.
package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ragchat/client/internal/api"
	"ragchat/client/internal/chatapi"
	"ragchat/client/internal/model"
	"ragchat/client/internal/service"
	"ragchat/client/internal/session"
)

// mockSender is a hand-written testify mock for the chatapi.Sender capability.
type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendMessage(ctx context.Context, req *chatapi.ChatRequest) (*chatapi.ChatResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*chatapi.ChatResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// setupChatHandler wires a handler over a real in-memory store and a mocked
// backend, which keeps the tests focused on HTTP behavior.
func setupChatHandler(t *testing.T) (*api.ChatHandler, *session.Store, *mockSender) {
	t.Helper()
	store := session.NewStore(session.DefaultProjects())
	sender := &mockSender{}
	svc := service.NewChatService(store, sender, service.GenerationDefaults{Model: "gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 1000})
	return api.NewChatHandler(store, svc, sender), store, sender
}

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g., `{chatID}`) into the request's context. Without it,
// `chi.URLParam` would return an empty string in handler-level tests.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestChatHandler_HandleChatMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, sender := setupChatHandler(t)
		sender.On("SendMessage", mock.Anything, mock.MatchedBy(func(req *chatapi.ChatRequest) bool {
			return req.Message == "What is RAG?"
		})).Return(&chatapi.ChatResponse{Response: "An architecture.", Sources: []string{"doc1"}}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"What is RAG?"}`))
		rr := httptest.NewRecorder()
		handler.HandleChatMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.ChatMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "An architecture.", resp.Message)
		assert.Equal(t, []string{"doc1"}, resp.Sources)
		sender.AssertExpectations(t)
	})

	t.Run("Sources default to an empty list", func(t *testing.T) {
		handler, _, sender := setupChatHandler(t)
		sender.On("SendMessage", mock.Anything, mock.Anything).
			Return(&chatapi.ChatResponse{Response: "plain"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
		rr := httptest.NewRecorder()
		handler.HandleChatMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"sources":[]`)
	})

	t.Run("Failure - missing message", func(t *testing.T) {
		handler, _, sender := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		handler.HandleChatMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
	})

	t.Run("Failure - malformed body", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": 42`))
		rr := httptest.NewRecorder()
		handler.HandleChatMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - backend unavailable maps to 502 with the localized message", func(t *testing.T) {
		handler, _, sender := setupChatHandler(t)
		sender.On("SendMessage", mock.Anything, mock.Anything).
			Return(nil, &chatapi.BackendUnavailableError{UserMessage: chatapi.BackendFallbackMessage}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
		rr := httptest.NewRecorder()
		handler.HandleChatMessage(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to communicate with backend", resp.Error)
		assert.Equal(t, chatapi.BackendFallbackMessage, resp.Message)
	})
}

func TestChatHandler_CreateChat(t *testing.T) {
	t.Run("Success - with project", func(t *testing.T) {
		handler, store, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chats", strings.NewReader(`{"project_id":"work"}`))
		rr := httptest.NewRecorder()
		handler.CreateChat(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var chat model.Chat
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chat))
		assert.Equal(t, "New chat", chat.Title)
		assert.Equal(t, "work", chat.ProjectID)
		assert.Equal(t, chat.ID, store.CurrentChatID())
	})

	t.Run("Success - empty body means unfiled", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chats", nil)
		rr := httptest.NewRecorder()
		handler.CreateChat(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var chat model.Chat
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chat))
		assert.Empty(t, chat.ProjectID)
	})
}

func TestChatHandler_GetChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, store, _ := setupChatHandler(t)
		chatID := store.CreateChat("")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chats/"+chatID, nil)
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.GetChat(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var chat model.Chat
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chat))
		assert.Equal(t, chatID, chat.ID)
	})

	t.Run("Failure - unknown id", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chats/nope", nil)
		req = addChiURLParams(req, map[string]string{"chatID": "nope"})
		rr := httptest.NewRecorder()
		handler.GetChat(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_UpdateChatTitle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, store, _ := setupChatHandler(t)
		chatID := store.CreateChat("")

		req := httptest.NewRequest(http.MethodPut, "/api/v1/chats/"+chatID+"/title", strings.NewReader(`{"title":"Renamed"}`))
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Renamed", store.GetChat(chatID).Title)
	})

	t.Run("Failure - empty title fails validation", func(t *testing.T) {
		handler, store, _ := setupChatHandler(t)
		chatID := store.CreateChat("")

		req := httptest.NewRequest(http.MethodPut, "/api/v1/chats/"+chatID+"/title", strings.NewReader(`{"title":""}`))
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "New chat", store.GetChat(chatID).Title)
	})

	t.Run("Failure - unknown chat", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/chats/nope/title", strings.NewReader(`{"title":"Renamed"}`))
		req = addChiURLParams(req, map[string]string{"chatID": "nope"})
		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_DeleteChat(t *testing.T) {
	handler, store, _ := setupChatHandler(t)
	chatID := store.CreateChat("")

	del := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/chats/"+chatID, nil)
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.DeleteChat(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, del().Code)
	assert.Nil(t, store.GetChat(chatID))
	// Deleting again is an idempotent no-op.
	assert.Equal(t, http.StatusOK, del().Code)
}

func TestChatHandler_HandleSendMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, store, sender := setupChatHandler(t)
		chatID := store.CreateChat("")

		sender.On("SendMessage", mock.Anything, mock.Anything).
			Return(&chatapi.ChatResponse{Response: "the reply"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chats/"+chatID+"/messages", strings.NewReader(`{"content":"Hello"}`))
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.SendMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Message)
		assert.Equal(t, "the reply", resp.Message.Content)
		assert.Empty(t, resp.Error)

		assert.Len(t, store.GetChat(chatID).Messages, 2)
	})

	t.Run("Backend failure still returns a displayable reply", func(t *testing.T) {
		handler, store, sender := setupChatHandler(t)
		chatID := store.CreateChat("")

		sender.On("SendMessage", mock.Anything, mock.Anything).
			Return(nil, &chatapi.ProviderError{StatusCode: 500, Message: "boom"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chats/"+chatID+"/messages", strings.NewReader(`{"content":"Hello"}`))
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.SendMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
		assert.Equal(t, "Извините, произошла ошибка. Попробуйте еще раз.", resp.Message.Content)
	})

	t.Run("Failure - unknown chat", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chats/nope/messages", strings.NewReader(`{"content":"Hello"}`))
		req = addChiURLParams(req, map[string]string{"chatID": "nope"})
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - empty content", func(t *testing.T) {
		handler, store, _ := setupChatHandler(t)
		chatID := store.CreateChat("")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/chats/"+chatID+"/messages", strings.NewReader(`{"content":""}`))
		req = addChiURLParams(req, map[string]string{"chatID": chatID})
		rr := httptest.NewRecorder()
		handler.HandleSendMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, store.GetChat(chatID).Messages)
	})
}

func TestChatHandler_GetGroupedChats(t *testing.T) {
	handler, store, _ := setupChatHandler(t)
	store.CreateChat("")
	store.CreateChat("work")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chats/grouped", nil)
	rr := httptest.NewRecorder()
	handler.GetGroupedChats(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp api.GroupedChatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Today, 2)
	assert.Equal(t, "just now", resp.Today[0].LastActivity)
	assert.Empty(t, resp.Yesterday)
	assert.Empty(t, resp.ThisWeek)
	assert.Empty(t, resp.Older)
}

func TestChatHandler_Projects(t *testing.T) {
	handler, store, _ := setupChatHandler(t)
	inWork := store.CreateChat("work")
	store.CreateChat("life")

	t.Run("GetProjects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
		rr := httptest.NewRecorder()
		handler.GetProjects(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var projects []model.Project
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &projects))
		assert.Len(t, projects, 4)
	})

	t.Run("GetProjectChats filters by project", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/work/chats", nil)
		req = addChiURLParams(req, map[string]string{"projectID": "work"})
		rr := httptest.NewRecorder()
		handler.GetProjectChats(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var chats []model.Chat
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chats))
		require.Len(t, chats, 1)
		assert.Equal(t, inWork, chats[0].ID)
	})

	t.Run("GetProjectChats returns an empty list for an unused project", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/money/chats", nil)
		req = addChiURLParams(req, map[string]string{"projectID": "money"})
		rr := httptest.NewRecorder()
		handler.GetProjectChats(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}

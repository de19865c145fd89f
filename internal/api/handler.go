package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ragchat/client/internal/chatapi"
	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/interfaces"
	"ragchat/client/internal/model"
	"ragchat/client/internal/session"
)

// ChatHandler handles HTTP requests for chats, projects and message sending.
type ChatHandler struct {
	store   *session.Store
	service interfaces.ChatService
	sender  chatapi.Sender
}

func NewChatHandler(store *session.Store, svc interfaces.ChatService, sender chatapi.Sender) *ChatHandler {
	return &ChatHandler{store: store, service: svc, sender: sender}
}

// ChatMessageRequest is the DTO for the plain chat proxy endpoint.
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// ChatMessageResponse mirrors the original backend reply shape.
type ChatMessageResponse struct {
	Message string   `json:"message"`
	Sources []string `json:"sources"`
}

// UpdateTitleRequest is the DTO for the manual chat title update endpoint.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100" example:"My Custom Chat Title"`
}

// CreateChatRequest optionally files the new chat under a project.
type CreateChatRequest struct {
	ProjectID string `json:"project_id"`
}

// SendMessageRequest is the DTO for sending a message inside an existing chat.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// SendMessageResponse carries the assistant's reply. Error, when non-empty,
// is the localized failure message from the request-state wrapper; the
// message content then holds the localized fallback text.
type SendMessageResponse struct {
	Message *model.Message `json:"message"`
	Error   string         `json:"error,omitempty"`
}

// ChatSummary is the listing shape used by the grouped-chats endpoint.
type ChatSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ProjectID    string    `json:"project_id,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActivity string    `json:"last_activity"`
}

// GroupedChatsResponse buckets chat summaries by recency.
type GroupedChatsResponse struct {
	Today     []ChatSummary `json:"today"`
	Yesterday []ChatSummary `json:"yesterday"`
	ThisWeek  []ChatSummary `json:"this_week"`
	Older     []ChatSummary `json:"older"`
}

// HandleChatMessage godoc
// @Summary      Send a message through the configured backend
// @Description  Forwards a raw user message to the active backend strategy and returns the generated reply.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        chatRequest  body  ChatMessageRequest  true  "User message"
// @Success      200  {object}  ChatMessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) HandleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, app_errors.ErrValidation)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.sender.SendMessage(r.Context(), &chatapi.ChatRequest{Message: req.Message})
	if err != nil {
		respondWithError(w, err)
		return
	}

	sources := resp.Sources
	if sources == nil {
		sources = []string{}
	}
	respondWithJSON(w, http.StatusOK, ChatMessageResponse{Message: resp.Response, Sources: sources})
}

// GetChats godoc
// @Summary      List chats
// @Description  Returns all chats, most recently created first.
// @Tags         Chats
// @Produce      json
// @Success      200  {array}  model.Chat
// @Router       /v1/chats [get]
func (h *ChatHandler) GetChats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.Chats())
}

// GetGroupedChats godoc
// @Summary      List chats grouped by recency
// @Description  Buckets all chats into today / yesterday / this week / older by last update time.
// @Tags         Chats
// @Produce      json
// @Success      200  {object}  GroupedChatsResponse
// @Router       /v1/chats/grouped [get]
func (h *ChatHandler) GetGroupedChats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	groups := session.GroupByRecency(h.store.Chats(), now)

	resp := GroupedChatsResponse{
		Today:     summarize(groups.Today, now),
		Yesterday: summarize(groups.Yesterday, now),
		ThisWeek:  summarize(groups.ThisWeek, now),
		Older:     summarize(groups.Older, now),
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func summarize(chats []*model.Chat, now time.Time) []ChatSummary {
	out := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		out = append(out, ChatSummary{
			ID:           chat.ID,
			Title:        chat.Title,
			ProjectID:    chat.ProjectID,
			UpdatedAt:    chat.UpdatedAt,
			LastActivity: session.FormatDistanceToNow(chat.UpdatedAt, now),
		})
	}
	return out
}

// CreateChat godoc
// @Summary      Create a chat
// @Description  Creates an empty chat, optionally filed under a project, and selects it.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        createRequest  body  CreateChatRequest  false  "Optional project id"
// @Success      201  {object}  model.Chat
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/chats [post]
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, app_errors.ErrValidation)
		return
	}

	chatID := h.store.CreateChat(req.ProjectID)
	respondWithJSON(w, http.StatusCreated, h.store.GetChat(chatID))
}

// GetChat godoc
// @Summary      Get a chat
// @Description  Returns a chat with its full message history.
// @Tags         Chats
// @Produce      json
// @Param        chatID  path  string  true  "Chat ID"
// @Success      200  {object}  model.Chat
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	chat := h.store.GetChat(chatID)
	if chat == nil {
		respondWithError(w, app_errors.ErrNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, chat)
}

// UpdateChatTitle godoc
// @Summary      Rename a chat
// @Description  Replaces the chat's title with a user-provided one.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        chatID        path  string              true  "Chat ID"
// @Param        titleRequest  body  UpdateTitleRequest  true  "New title"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/title [put]
func (h *ChatHandler) UpdateChatTitle(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, app_errors.ErrValidation)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if !h.store.UpdateChatTitle(chatID, req.Title) {
		respondWithError(w, app_errors.ErrNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Description  Removes a chat. Deleting an unknown id is a no-op; the operation is idempotent.
// @Tags         Chats
// @Produce      json
// @Param        chatID  path  string  true  "Chat ID"
// @Success      200  {object}  StatusResponse
// @Router       /v1/chats/{chatID} [delete]
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteChat(chi.URLParam(r, "chatID"))
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleSendMessage godoc
// @Summary      Send a message in a chat
// @Description  Appends the user's message, obtains the assistant's reply through the configured backend and appends it.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        chatID       path  string              true  "Chat ID"
// @Param        sendRequest  body  SendMessageRequest  true  "Message content"
// @Success      200  {object}  SendMessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/messages [post]
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, app_errors.ErrValidation)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	msg, errMsg, err := h.service.SendMessage(r.Context(), chatID, req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SendMessageResponse{Message: msg, Error: errMsg})
}

// GetProjects godoc
// @Summary      List projects
// @Description  Returns the fixed set of projects chats may be filed under.
// @Tags         Projects
// @Produce      json
// @Success      200  {array}  model.Project
// @Router       /v1/projects [get]
func (h *ChatHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.Projects())
}

// GetProjectChats godoc
// @Summary      List chats in a project
// @Description  Returns the chats filed under a project, most recently created first.
// @Tags         Projects
// @Produce      json
// @Param        projectID  path  string  true  "Project ID"
// @Success      200  {array}  model.Chat
// @Router       /v1/projects/{projectID}/chats [get]
func (h *ChatHandler) GetProjectChats(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	chats := h.store.ListChatsByProject(projectID)
	if chats == nil {
		chats = []*model.Chat{}
	}
	respondWithJSON(w, http.StatusOK, chats)
}

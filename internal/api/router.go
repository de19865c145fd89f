package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "ragchat/client/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	// These are applied to every request.
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// --- Public Routes ---

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint, used by container orchestration for
	// liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The plain chat endpoint keeps the original wire contract the frontend
	// already speaks: POST {message} in, {message, sources} out.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Post("/api/chat", chatHandler.HandleChatMessage)
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// --- Chats ---
		r.Get("/chats", chatHandler.GetChats)
		r.Get("/chats/grouped", chatHandler.GetGroupedChats)
		r.Post("/chats", chatHandler.CreateChat)
		r.Get("/chats/{chatID}", chatHandler.GetChat)
		r.Put("/chats/{chatID}/title", chatHandler.UpdateChatTitle)
		r.Delete("/chats/{chatID}", chatHandler.DeleteChat)
		r.Post("/chats/{chatID}/messages", chatHandler.HandleSendMessage)

		// --- Projects ---
		r.Get("/projects", chatHandler.GetProjects)
		r.Get("/projects/{projectID}/chats", chatHandler.GetProjectChats)
	})

	return r
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ragchat/client/internal/api"
	"ragchat/client/internal/chatapi"
	"ragchat/client/internal/config"
	"ragchat/client/internal/service"
	"ragchat/client/internal/session"
)

// App bundles the wired application pieces so tests can exercise them
// without starting the listener.
type App struct {
	Store  *session.Store
	Sender chatapi.Sender
	Server *http.Server
}

// NewApp wires the session store, the configured backend strategy, the
// services and the HTTP surface.
func NewApp(cfg *config.Config) (*App, error) {
	store := session.NewStore(session.DefaultProjects())

	sender, err := chatapi.New(cfg)
	if err != nil {
		return nil, err
	}

	defaults := service.GenerationDefaults{
		Model:       cfg.MainModel,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
	chatService := service.NewChatService(store, sender, defaults)

	chatHandler := api.NewChatHandler(store, chatService, sender)
	router := api.NewRouter(chatHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{Store: store, Sender: sender, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	slog.Info("Starting server",
		"app", cfg.AppName,
		"version", cfg.AppVersion,
		"port", cfg.AppPort,
		"backend", cfg.ChatBackend,
	)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

package main

import (
	"os"

	"ragchat/client/internal/app"
)

// @title        AI Chatbot RAG client API
// @version      1.0.0
// @description  Chat session state and message sending over interchangeable backends.
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}

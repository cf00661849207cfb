// Command funchost runs the A2A bridge behind a serverless custom-handler
// contract: the platform assigns the listen port via
// FUNCTIONS_CUSTOMHANDLER_PORT and fronts the /api/* routes. The success
// envelope defaults to the bare-message shape this deployment style has
// always answered with.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/agentbridge/agentbridge/a2a"
	"github.com/agentbridge/agentbridge/auth"
	"github.com/agentbridge/agentbridge/bridge"
	"github.com/agentbridge/agentbridge/foundry"
)

func main() {
	godotenv.Load()

	service := os.Getenv("AI_SERVICE_NAME")
	project := os.Getenv("PROJECT_NAME")
	assistantID := os.Getenv("ASSISTANT_ID")
	if service == "" || project == "" || assistantID == "" {
		slog.Error("AI_SERVICE_NAME, PROJECT_NAME, and ASSISTANT_ID are required")
		os.Exit(1)
	}

	port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT")
	if port == "" {
		port = envOrDefault("PORT", "8080")
	}

	shape, err := bridge.ParseShape(envOrDefault("RESPONSE_SHAPE", "message"))
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tokens := auth.Chain(
		auth.Static(os.Getenv("AZURE_AI_BEARER_TOKEN")),
		auth.ManagedIdentity(envOrDefault("TOKEN_RESOURCE", "https://ai.azure.com")),
	)

	client := foundry.NewClient(foundry.Config{
		Service:     service,
		Project:     project,
		APIVersion:  envOrDefault("API_VERSION", "2025-05-01"),
		AssistantID: assistantID,
	}, tokens)

	orchestrator := bridge.New(client, bridge.WithShape(shape))

	publicURL := strings.TrimSuffix(envOrDefault("PUBLIC_URL", "http://127.0.0.1:"+port), "/")
	card := a2a.DefaultCard(publicURL+"/api/chat", envOrDefault("PREFERRED_TRANSPORT", "JSONRPC"))

	mux := http.NewServeMux()
	mux.Handle("/api/chat/.well-known/agent-card.json", bridge.CardHandler(card))
	mux.Handle("/api/chat", bridge.ChatHandler(orchestrator))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           bridge.CORSMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("function host listening", "port", port, "assistant", assistantID)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

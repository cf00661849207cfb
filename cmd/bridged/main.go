// Command bridged runs the A2A bridge as a standalone HTTP service: agent
// card discovery under the well-known paths and a JSON-RPC chat endpoint
// at /chat and /api/chat.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agentbridge/agentbridge/a2a"
	"github.com/agentbridge/agentbridge/auth"
	"github.com/agentbridge/agentbridge/bridge"
	"github.com/agentbridge/agentbridge/foundry"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	shape, err := bridge.ParseShape(cfg.ResponseShape)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	card, err := loadCard(cfg)
	if err != nil {
		slog.Error("agent card unusable", "error", err)
		os.Exit(1)
	}

	tokens := auth.Chain(
		auth.Static(cfg.BearerToken),
		auth.ManagedIdentity(cfg.TokenResource),
	)

	client := foundry.NewClient(foundry.Config{
		Service:     cfg.Service,
		Project:     cfg.Project,
		APIVersion:  cfg.APIVersion,
		AssistantID: cfg.AssistantID,
	}, tokens, foundry.WithPollInterval(cfg.PollInterval))

	orchestrator := bridge.New(client,
		bridge.WithShape(shape),
		bridge.WithRunTimeout(cfg.RunTimeout),
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(orchestrator, card),
	}

	go func() {
		slog.Info("bridge listening",
			"port", cfg.Port,
			"assistant", cfg.AssistantID,
			"shape", string(shape),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// newRouter wires the chat and discovery routes, including the /api
// aliases kept for callers of the function-style deployment.
func newRouter(orchestrator *bridge.Orchestrator, card a2a.AgentCard) http.Handler {
	chat := bridge.ChatHandler(orchestrator)
	discovery := bridge.CardHandler(card)

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(bridge.CORSMiddleware)

	r.Get("/.well-known/agent-card.json", discovery.ServeHTTP)
	r.Get("/chat/.well-known/agent-card.json", discovery.ServeHTTP)
	r.Get("/api/chat/.well-known/agent-card.json", discovery.ServeHTTP)

	r.Post("/chat", chat.ServeHTTP)
	r.Post("/api/chat", chat.ServeHTTP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

// loadCard returns the configured card file when set, else the built-in
// card pointing at this deployment's chat URL.
func loadCard(cfg *Config) (a2a.AgentCard, error) {
	if cfg.AgentCardPath != "" {
		return a2a.LoadCard(cfg.AgentCardPath)
	}
	url := strings.TrimSuffix(cfg.PublicURL, "/") + "/chat"
	card := a2a.DefaultCard(url, cfg.PreferredTransport)
	return card, card.Validate()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// requestLogger logs one line per request with duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration loaded from environment
// variables.
type Config struct {
	// Server
	Port      string
	LogLevel  string // debug, info, warn, error
	PublicURL string // public base URL advertised in the agent card

	// Remote assistant service
	Service     string
	Project     string
	AssistantID string
	APIVersion  string

	// Credentials
	BearerToken   string // pre-shared token, overrides the identity exchange
	TokenResource string

	// Behavior
	ResponseShape      string
	PreferredTransport string
	PollInterval       time.Duration
	RunTimeout         time.Duration
	AgentCardPath      string // optional card file, replaces the built-in card
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		PublicURL:          getEnvOrDefault("PUBLIC_URL", "http://127.0.0.1:8000"),
		Service:            os.Getenv("AI_SERVICE_NAME"),
		Project:            os.Getenv("PROJECT_NAME"),
		AssistantID:        os.Getenv("ASSISTANT_ID"),
		APIVersion:         getEnvOrDefault("API_VERSION", "2025-05-01"),
		BearerToken:        os.Getenv("AZURE_AI_BEARER_TOKEN"),
		TokenResource:      getEnvOrDefault("TOKEN_RESOURCE", "https://ai.azure.com"),
		ResponseShape:      getEnvOrDefault("RESPONSE_SHAPE", "task"),
		PreferredTransport: getEnvOrDefault("PREFERRED_TRANSPORT", "JSONRPC"),
		PollInterval:       getEnvDurationOrDefault("POLL_INTERVAL", 1500*time.Millisecond),
		RunTimeout:         getEnvDurationOrDefault("RUN_TIMEOUT", 2*time.Minute),
		AgentCardPath:      os.Getenv("AGENT_CARD_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("AI_SERVICE_NAME is required")
	}
	if c.Project == "" {
		return fmt.Errorf("PROJECT_NAME is required")
	}
	if c.AssistantID == "" {
		return fmt.Errorf("ASSISTANT_ID is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

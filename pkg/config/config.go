package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterAppTitle string
	OpenRouterReferer  string
	// Primary chat model, and a secondary tried once when the primary name
	// is not recognized by the provider.
	ChatModel         string
	ChatFallbackModel string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	AdminEmail    string
	AdminPassword string

	// Idle chat widgets are dropped after this many minutes.
	ChatIdleTTLMinutes int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "portfolio-server"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),
		ChatModel:          getEnv("CHAT_MODEL", "google/gemini-2.0-flash-001"),
		ChatFallbackModel:  getEnv("CHAT_FALLBACK_MODEL", "openai/gpt-4o-mini"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "portfolio-server"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		ChatIdleTTLMinutes: getEnvInt("CHAT_IDLE_TTL_MINUTES", 30),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

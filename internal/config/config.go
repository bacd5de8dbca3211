package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort           string
	DBPath            string
	GenAIAPIKey       string
	GenAIBaseURL      string
	GenAIModel        string
	GenAITimeout      time.Duration
	WikipediaAPIURL   string
	ScrapeTimeout     time.Duration
	CategoryRulesPath string
	LogLevel          slog.Level
	LogFormat         string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	// Try to find project root by looking for go.mod
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort: getEnv("API_PORT", "9000"),
		DBPath:  getEnv("DB_PATH", "./data/researchbot.db"),
		// Empty API key disables the remote generator; answering then
		// runs on local keyword search only.
		GenAIAPIKey:       getEnv("GENAI_API_KEY", ""),
		GenAIBaseURL:      getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GenAIModel:        getEnv("GENAI_MODEL", "gemini-1.5-flash"),
		WikipediaAPIURL:   getEnv("WIKIPEDIA_API_URL", "https://en.wikipedia.org/w/api.php"),
		CategoryRulesPath: getEnv("CATEGORY_RULES_PATH", ""),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	genaiTimeout, err := parseTimeoutSeconds("GENAI_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.GenAITimeout = genaiTimeout

	scrapeTimeout, err := parseTimeoutSeconds("SCRAPE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.ScrapeTimeout = scrapeTimeout

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	// Create ./data directory if it doesn't exist (for future DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseTimeoutSeconds reads a positive integer seconds value from the
// environment, falling back to the default when unset.
func parseTimeoutSeconds(key string, defaultSeconds int) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return time.Duration(defaultSeconds) * time.Second, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return time.Duration(seconds) * time.Second, nil
}

// parseLogLevel maps a level name to a slog.Level.
func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", raw)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

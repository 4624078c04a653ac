package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"simon-jot/internal/layout"
)

// Config holds all configuration for the application.
type Config struct {
	ServerURL      string
	GoogleMapsKey  string
	SimonProviders []string
	DBPath         string
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string

	DebounceInterval  time.Duration
	BackendTimeout    time.Duration
	BackendMaxRetries int
	BackendRateLimit  float64 // requests per second, 0 disables the limiter
	BackendRateBurst  int

	// Editor is the default viewport; mount requests override the fields they set.
	Editor layout.Monospace
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

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
		ServerURL:      strings.TrimRight(getEnv("SERVER_URL", ""), "/"),
		GoogleMapsKey:  getEnv("GOOGLE_MAPS_KEY", ""),
		SimonProviders: splitList(getEnv("SIMON_PROVIDERS", "map")),
		DBPath:         getEnv("DB_PATH", "./data/simon-jot.db"),
		APIPort:        getEnv("API_PORT", "9000"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL is required")
	}
	if u, err := url.Parse(cfg.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("SERVER_URL must be an absolute URL, got %q", cfg.ServerURL)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.DebounceInterval, err = getDuration("DEBOUNCE_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.BackendTimeout, err = getDuration("BACKEND_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.BackendMaxRetries, err = getInt("BACKEND_MAX_RETRIES", 2, 0); err != nil {
		return nil, err
	}
	if cfg.BackendRateLimit, err = getFloat("BACKEND_RATE_LIMIT", 10, 0); err != nil {
		return nil, err
	}
	if cfg.BackendRateBurst, err = getInt("BACKEND_RATE_BURST", 5, 1); err != nil {
		return nil, err
	}

	if cfg.Editor.Columns, err = getInt("EDITOR_COLUMNS", 80, 1); err != nil {
		return nil, err
	}
	if cfg.Editor.LineHeight, err = getFloat("EDITOR_LINE_HEIGHT", 24, 1); err != nil {
		return nil, err
	}
	if cfg.Editor.CharWidth, err = getFloat("EDITOR_CHAR_WIDTH", 9.6, 0); err != nil {
		return nil, err
	}
	if cfg.Editor.PaddingTop, err = getFloat("EDITOR_PADDING_TOP", 40, 0); err != nil {
		return nil, err
	}
	if cfg.Editor.PaddingLeft, err = getFloat("EDITOR_PADDING_LEFT", 16, 0); err != nil {
		return nil, err
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a positive Go duration such as "1s" or "250ms".
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return d, nil
}

func getInt(key string, defaultValue, min int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n < min {
		return 0, fmt.Errorf("%s must be at least %d", key, min)
	}
	return n, nil
}

func getFloat(key string, defaultValue, min float64) (float64, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	if f < min {
		return 0, fmt.Errorf("%s must be at least %v", key, min)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

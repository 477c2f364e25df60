package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is the default planner backend base URL
	DefaultAPIURL = "http://localhost:8080"
	// DefaultAIModel is the default completion model
	DefaultAIModel = "gpt-4o-mini"
	// DefaultAITimeout is the default completion request timeout
	DefaultAITimeout = 30 * time.Second
)

// Config holds application configuration
type Config struct {
	APIURL    string
	OpenAIKey string
	AIModel   string
	AIBaseURL string
	AITimeout time.Duration
	UserID    int64
	DataDir   string
	DebugMode bool
}

// Load loads configuration from the environment, reading a .env file first
// if one is present in the working directory.
func Load() (*Config, error) {
	// A missing .env file is not an error; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:    getEnv("TASKPLAN_API_URL", DefaultAPIURL),
		OpenAIKey: getEnv("OPENAI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", DefaultAIModel),
		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AITimeout: time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		UserID:    int64(getEnvInt("TASKPLAN_USER_ID", 0)),
		DataDir:   getEnv("TASKPLAN_DATA_DIR", ""),
		DebugMode: getEnvBool("TASKPLAN_DEBUG", false),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.UserID == 0 {
		return nil, fmt.Errorf("TASKPLAN_USER_ID is required")
	}

	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "taskplan")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

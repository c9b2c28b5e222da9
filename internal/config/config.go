// Package config loads server configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/schoolyard/edugen/internal/llm"
)

// Config holds everything the serve command needs to run.
type Config struct {
	// Addr is the listen address for the HTTP server. Default ":8080".
	Addr string

	// DBPath is the SQLite database file. Empty means the default
	// XDG data path resolved by store.DefaultDBPath.
	DBPath string

	// APIToken protects /api/v1. Empty disables auth (local dev only).
	APIToken string

	// QuestionMaxRetries and ArticleMaxRetries bound how many extra
	// generation attempts the quality loop may spend per request when
	// the caller does not specify max_retries.
	QuestionMaxRetries int
	ArticleMaxRetries  int

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	LLM llm.Config
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:               ":8080",
		QuestionMaxRetries: 1,
		ArticleMaxRetries:  3,
		LogLevel:           "info",
	}

	if v := os.Getenv("EDUGEN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("EDUGEN_DB"); v != "" {
		cfg.DBPath = v
	}
	cfg.APIToken = os.Getenv("EDUGEN_API_TOKEN")
	if v := os.Getenv("EDUGEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.QuestionMaxRetries, err = intEnv("EDUGEN_QUESTION_MAX_RETRIES", cfg.QuestionMaxRetries); err != nil {
		return Config{}, err
	}
	if cfg.ArticleMaxRetries, err = intEnv("EDUGEN_ARTICLE_MAX_RETRIES", cfg.ArticleMaxRetries); err != nil {
		return Config{}, err
	}

	cfg.LLM = llm.ConfigFromEnv()
	if os.Getenv("EDUGEN_LLM_PROVIDER") == "" {
		// No explicit provider: check the conventional key vars so a
		// bare OPENAI_API_KEY etc. is enough to get started.
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: expected an integer, got %q", key, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must be >= 0, got %d", key, n)
	}
	return n, nil
}

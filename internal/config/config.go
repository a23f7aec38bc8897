// Package config holds the summarization configuration value object.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls every bound in the brief pipeline. It is built once and
// passed by value into the components; nothing mutates it after construction.
type Config struct {
	// Chunking / summarization bounds
	MaxChunkTokens  int
	BatchThreshold  int // collapse chunks into batches when count exceeds this
	MinBulletPoints int
	MaxBulletPoints int

	// Output bounds
	MinHashtags   int
	MaxHashtags   int
	MaxTitleWords int

	// Input validation
	MinBodyChars int

	// Model settings
	SummaryModel      string
	SentimentModel    string
	SentimentStrategy string // "lexicon" or "model"
	MaxModelRequests  int    // daily budget per capability (0 = unlimited)

	// FastMode trades abstract quality for latency: the factual opening is
	// built from the leading raw sentences instead of the model summary.
	FastMode bool

	// Reference data
	CategoryTablePath string

	// External call policy
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

const (
	StrategyLexicon = "lexicon"
	StrategyModel   = "model"
)

// Standard returns the default configuration.
func Standard() Config {
	return Config{
		MaxChunkTokens:    1000,
		BatchThreshold:    3,
		MinBulletPoints:   3,
		MaxBulletPoints:   5,
		MinHashtags:       2,
		MaxHashtags:       4,
		MaxTitleWords:     7,
		MinBodyChars:      100,
		SummaryModel:      "gemini-1.5-flash",
		SentimentModel:    "gemini-1.5-flash",
		SentimentStrategy: StrategyLexicon,
		MaxModelRequests:  0,
		CategoryTablePath: "configs/categories.yaml",
		RequestTimeout:    30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Second,
	}
}

// Fast returns the latency-optimized variant: same shape, lower bounds.
func Fast() Config {
	cfg := Standard()
	cfg.MaxChunkTokens = 600
	cfg.MinBulletPoints = 2
	cfg.MaxBulletPoints = 3
	cfg.MaxHashtags = 3
	cfg.FastMode = true
	cfg.RetryAttempts = 1
	cfg.RetryDelay = 2 * time.Second
	return cfg
}

// FromEnv builds a config from Standard() plus environment overrides.
func FromEnv() (Config, error) {
	cfg := Standard()

	if os.Getenv("FAST_MODE") == "true" {
		cfg = Fast()
	}

	cfg.SummaryModel = getEnvOrDefault("SUMMARY_MODEL", cfg.SummaryModel)
	cfg.SentimentModel = getEnvOrDefault("SENTIMENT_MODEL", cfg.SentimentModel)
	cfg.SentimentStrategy = getEnvOrDefault("SENTIMENT_STRATEGY", cfg.SentimentStrategy)
	cfg.CategoryTablePath = getEnvOrDefault("CATEGORY_TABLE_PATH", cfg.CategoryTablePath)

	cfg.MaxChunkTokens = getEnvIntOrDefault("MAX_CHUNK_TOKENS", cfg.MaxChunkTokens)
	cfg.BatchThreshold = getEnvIntOrDefault("BATCH_THRESHOLD", cfg.BatchThreshold)
	cfg.MinHashtags = getEnvIntOrDefault("MIN_HASHTAGS", cfg.MinHashtags)
	cfg.MaxHashtags = getEnvIntOrDefault("MAX_HASHTAGS", cfg.MaxHashtags)
	cfg.MaxTitleWords = getEnvIntOrDefault("MAX_TITLE_WORDS", cfg.MaxTitleWords)
	cfg.MinBodyChars = getEnvIntOrDefault("MIN_BODY_CHARS", cfg.MinBodyChars)
	cfg.MaxModelRequests = getEnvIntOrDefault("MAX_MODEL_REQUESTS", cfg.MaxModelRequests)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate rejects malformed configurations outright rather than guessing.
func (c Config) Validate() error {
	if c.MaxChunkTokens <= 0 {
		return fmt.Errorf("MaxChunkTokens must be positive, got %d", c.MaxChunkTokens)
	}
	if c.MinHashtags < 0 || c.MaxHashtags < c.MinHashtags {
		return fmt.Errorf("hashtag bounds invalid: min=%d max=%d", c.MinHashtags, c.MaxHashtags)
	}
	if c.MinBulletPoints < 0 || c.MaxBulletPoints < c.MinBulletPoints {
		return fmt.Errorf("bullet point bounds invalid: min=%d max=%d", c.MinBulletPoints, c.MaxBulletPoints)
	}
	if c.MaxTitleWords < 1 {
		return fmt.Errorf("MaxTitleWords must be at least 1, got %d", c.MaxTitleWords)
	}
	if c.MinBodyChars < 0 {
		return fmt.Errorf("MinBodyChars must not be negative, got %d", c.MinBodyChars)
	}
	if c.SentimentStrategy != StrategyLexicon && c.SentimentStrategy != StrategyModel {
		return fmt.Errorf("SentimentStrategy must be %q or %q, got %q", StrategyLexicon, StrategyModel, c.SentimentStrategy)
	}
	if c.SummaryModel == "" {
		return fmt.Errorf("SummaryModel is required")
	}
	return nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardIsValid(t *testing.T) {
	assert.NoError(t, Standard().Validate())
}

func TestFastIsValidAndTighter(t *testing.T) {
	fast := Fast()
	require.NoError(t, fast.Validate())
	assert.True(t, fast.FastMode)
	assert.Less(t, fast.MaxChunkTokens, Standard().MaxChunkTokens)
	assert.LessOrEqual(t, fast.RetryAttempts, Standard().RetryAttempts)
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cfg := Standard()
	cfg.MaxChunkTokens = 0
	assert.Error(t, cfg.Validate())

	cfg = Standard()
	cfg.MinHashtags = 5
	cfg.MaxHashtags = 2
	assert.Error(t, cfg.Validate())

	cfg = Standard()
	cfg.MaxTitleWords = 0
	assert.Error(t, cfg.Validate())

	cfg = Standard()
	cfg.SentimentStrategy = "vibes"
	assert.Error(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAX_CHUNK_TOKENS", "800")
	t.Setenv("SENTIMENT_STRATEGY", StrategyModel)
	t.Setenv("MIN_HASHTAGS", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.MaxChunkTokens)
	assert.Equal(t, StrategyModel, cfg.SentimentStrategy)
	assert.Equal(t, 3, cfg.MinHashtags)
}

func TestFromEnvFastMode(t *testing.T) {
	t.Setenv("FAST_MODE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.FastMode)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	t.Setenv("SENTIMENT_STRATEGY", "nonsense")

	_, err := FromEnv()
	assert.Error(t, err)
}

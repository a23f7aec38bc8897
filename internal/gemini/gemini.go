// Package gemini wraps the Google generative model API behind the two
// capabilities the pipeline needs: bounded summarization and sentiment labels.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finbrief/internal/config"
	"finbrief/internal/metrics"
	"finbrief/internal/ratelimit"
	"finbrief/internal/retry"
)

// maxPromptRunes caps article text sent in one prompt. Over-long inputs are
// cut at a rune boundary, preferring a sentence end.
const maxPromptRunes = 6000

type Client struct {
	client   *genai.Client
	limiter  *ratelimit.Limiter
	cfg      config.Config
	retryCfg retry.Config
}

func NewClient(ctx context.Context, apiKey string, cfg config.Config, limiter *ratelimit.Limiter) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:  client,
		limiter: limiter,
		cfg:     cfg,
		retryCfg: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		},
	}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize asks the model for an abstract between minWords and maxWords.
// The returned text is trimmed but otherwise unaltered; callers enforce
// their own length fallbacks.
func (c *Client) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.UseSummary(); err != nil {
			return "", err
		}
	}
	metrics.Global.IncrementSummaryCalls()

	prompt := fmt.Sprintf(
		"Summarize the following financial news text in %d to %d words. "+
			"Keep concrete numbers, company names and dates. "+
			"Respond with the summary only, no preamble.\n\nTEXT:\n%s",
		minWords, maxWords, sanitize(text))

	out, err := c.generate(ctx, c.cfg.SummaryModel, prompt)
	if err != nil {
		metrics.Global.IncrementModelFailures()
		return "", fmt.Errorf("summarize: %w", err)
	}
	return out, nil
}

// Sentiment asks the model to label text as positive, negative or neutral.
// Any unrecognized response is an error so callers can fall back.
func (c *Client) Sentiment(ctx context.Context, text string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.UseSentiment(); err != nil {
			return "", err
		}
	}
	metrics.Global.IncrementSentimentCalls()

	prompt := fmt.Sprintf(
		"Classify the market sentiment of this financial news text. "+
			"Respond with exactly one word: positive, negative or neutral.\n\nTEXT:\n%s",
		sanitize(text))

	out, err := c.generate(ctx, c.cfg.SentimentModel, prompt)
	if err != nil {
		metrics.Global.IncrementModelFailures()
		return "", fmt.Errorf("sentiment: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(out))
	switch {
	case strings.HasPrefix(label, "positive"):
		return "positive", nil
	case strings.HasPrefix(label, "negative"):
		return "negative", nil
	case strings.HasPrefix(label, "neutral"):
		return "neutral", nil
	}
	metrics.Global.IncrementModelFailures()
	return "", fmt.Errorf("sentiment: unrecognized label %q", label)
}

func (c *Client) generate(ctx context.Context, modelName, prompt string) (string, error) {
	model := c.client.GenerativeModel(modelName)

	var out string
	err := retry.Do(ctx, c.retryCfg, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()

		resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
		if err != nil {
			return fmt.Errorf("failed to generate content: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("empty response from model")
		}

		out = strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
		if out == "" {
			return fmt.Errorf("blank response from model")
		}
		return nil
	})
	return out, err
}

func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) > maxPromptRunes {
		runes := []rune(text)
		trimmed := string(runes[:maxPromptRunes])
		// cut on rune boundary then try to end at sentence
		if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
			trimmed = trimmed[:idx+1]
		}
		text = trimmed + "\n[TRUNCATED]"
	}
	return text
}

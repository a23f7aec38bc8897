// Package app wires configuration, the model client and the pipeline into
// the two run modes: one-shot briefing and the HTTP server.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"finbrief/internal/classify"
	"finbrief/internal/config"
	"finbrief/internal/fetch"
	"finbrief/internal/gemini"
	"finbrief/internal/logger"
	"finbrief/internal/pipeline"
	"finbrief/internal/ratelimit"
	"finbrief/internal/server"
	"finbrief/internal/storage"
	"finbrief/internal/summary"
	"finbrief/internal/tasks"
)

const briefCacheTTLHours = 24

// App owns the long-lived pieces shared by both run modes.
type App struct {
	cfg    config.Config
	pipe   *pipeline.Pipeline
	cache  *storage.BriefCache
	client *gemini.Client
}

// unavailableModel stands in when no API key is configured, so every model
// call fails and the pipeline runs on its deterministic fallbacks.
type unavailableModel struct{}

func (unavailableModel) Summarize(context.Context, string, int, int) (string, error) {
	return "", errors.New("no model API key configured")
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	table, err := classify.LoadTable(cfg.CategoryTablePath)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	var (
		model     summary.Model              = unavailableModel{}
		sentiment classify.SentimentStrategy = classify.LexiconSentiment{}
	)
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		limiter := ratelimit.New(cfg.MaxModelRequests, cfg.MaxModelRequests, 0)
		client, err := gemini.NewClient(ctx, apiKey, cfg, limiter)
		if err != nil {
			return nil, err
		}
		a.client = client
		model = client
		if cfg.SentimentStrategy == config.StrategyModel {
			sentiment = classify.ModelSentiment{Model: client}
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, running on truncation fallbacks only")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pipe, err := pipeline.New(cfg, model, sentiment, table, rng)
	if err != nil {
		return nil, err
	}
	a.pipe = pipe

	cachePath := os.Getenv("BRIEF_CACHE_PATH")
	if cachePath == "" {
		cachePath = "brief_cache.json"
	}
	a.cache = storage.NewBriefCache(cachePath, briefCacheTTLHours)
	if err := a.cache.Load(); err != nil {
		logger.Warn("brief cache load failed, starting empty", "error", err)
	}

	return a, nil
}

func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
}

// Serve runs the HTTP API until the listener fails.
func (a *App) Serve(addr string) error {
	store := tasks.NewStore()
	defer store.Close()

	return server.New(a.pipe, store).Run(addr)
}

// BriefText summarizes one article and prints the brief as JSON, consulting
// the file cache first.
func (a *App) BriefText(ctx context.Context, title, body string, out io.Writer) error {
	if cached, ok := a.cache.Get(title, body); ok {
		logger.Info("brief served from cache")
		return writeJSON(out, cached)
	}

	result, err := a.pipe.Summarize(ctx, title, body)
	if err != nil {
		return err
	}

	a.cache.Put(title, body, result)
	if err := a.cache.Save(); err != nil {
		logger.Warn("brief cache save failed", "error", err)
	}
	return writeJSON(out, result)
}

// BriefURL extracts an article from a web page and briefs it.
func (a *App) BriefURL(ctx context.Context, url string, out io.Writer) error {
	art, err := fetch.ExtractArticle(ctx, url)
	if err != nil {
		return fmt.Errorf("extract %s: %w", url, err)
	}
	return a.BriefText(ctx, art.Title, art.Body, out)
}

// BriefFeeds pulls every feed in the YAML list and briefs up to max items
// that carry enough content.
func (a *App) BriefFeeds(ctx context.Context, feedsPath string, max int, out io.Writer) error {
	urls, err := fetch.LoadFeeds(feedsPath)
	if err != nil {
		return fmt.Errorf("load feeds: %w", err)
	}

	items, err := fetch.FetchAllFeeds(ctx, urls)
	if err != nil {
		return err
	}

	briefed := 0
	for _, item := range items {
		if briefed >= max {
			break
		}
		body := item.Content
		if body == "" {
			body = item.Description
		}
		if err := a.BriefText(ctx, item.Title, body, out); err != nil {
			if errors.Is(err, pipeline.ErrInvalidInput) {
				logger.Debug("feed item skipped", "title", item.Title, "error", err)
				continue
			}
			return err
		}
		briefed++
	}

	logger.Info("feed briefing done", "briefed", briefed, "items", len(items))
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package summary turns an article of any length into one bounded abstract,
// chunking long inputs and re-summarizing the combined result when needed.
package summary

import (
	"context"
	"errors"
	"strings"

	"finbrief/internal/chunker"
	"finbrief/internal/config"
	"finbrief/internal/logger"
	"finbrief/internal/metrics"
	"finbrief/internal/textutil"
)

// ErrSummarizationFailed reports that no abstract could be produced at all,
// not even via the truncation fallbacks.
var ErrSummarizationFailed = errors.New("summarization failed")

// Word bounds per call, and character caps for the truncation fallbacks.
const (
	singleMinWords = 50
	singleMaxWords = 200
	chunkMinWords  = 20
	chunkMaxWords  = 100
	finalMinWords  = 100
	finalMaxWords  = 250

	singleFallbackChars = 500
	chunkFallbackChars  = 200
)

// Model is the external summarization capability. Implementations may fail;
// the orchestrator always degrades to deterministic truncation.
type Model interface {
	Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error)
}

type Summarizer struct {
	model Model
	cfg   config.Config
}

func New(model Model, cfg config.Config) *Summarizer {
	return &Summarizer{model: model, cfg: cfg}
}

// Summarize produces an abstract of text. Inputs within the chunk budget get
// a single model call; longer inputs are summarized per chunk and the parts
// re-summarized when the combination runs over the final budget.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrSummarizationFailed
	}

	chunks := chunker.Split(text, s.cfg.MaxChunkTokens)
	if len(chunks) == 0 {
		return "", ErrSummarizationFailed
	}

	if len(chunks) == 1 {
		return s.summarizeSingle(ctx, chunks[0].Text()), nil
	}

	// Too many chunks means too many model calls. Collapse adjacent chunks
	// into batches at 80% of the budget to stay under the prompt ceiling.
	if len(chunks) > s.cfg.BatchThreshold {
		batched := chunker.Batch(chunks, s.cfg.MaxChunkTokens*8/10)
		logger.Debug("batched chunks before summarization", "chunks", len(chunks), "batches", len(batched))
		chunks = batched
	}

	parts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		parts = append(parts, s.summarizeChunk(ctx, ch.Text()))
	}
	combined := strings.TrimSpace(strings.Join(parts, " "))
	if combined == "" {
		return "", ErrSummarizationFailed
	}

	if textutil.EstimateTokens(combined) > s.cfg.MaxChunkTokens {
		if out, err := s.model.Summarize(ctx, combined, finalMinWords, finalMaxWords); err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out), nil
		} else if err != nil {
			logger.Warn("final re-summarization failed, keeping combined chunk summaries", "error", err)
			metrics.Global.IncrementFallbacksUsed()
		}
	}
	return combined, nil
}

func (s *Summarizer) summarizeSingle(ctx context.Context, text string) string {
	out, err := s.model.Summarize(ctx, text, singleMinWords, singleMaxWords)
	if err == nil && strings.TrimSpace(out) != "" {
		return strings.TrimSpace(out)
	}
	if err != nil {
		logger.Warn("summarization failed, truncating input", "error", err)
	}
	metrics.Global.IncrementFallbacksUsed()
	return truncateAtWord(text, singleFallbackChars)
}

func (s *Summarizer) summarizeChunk(ctx context.Context, text string) string {
	out, err := s.model.Summarize(ctx, text, chunkMinWords, chunkMaxWords)
	if err == nil && strings.TrimSpace(out) != "" {
		return strings.TrimSpace(out)
	}
	if err != nil {
		logger.Warn("chunk summarization failed, truncating chunk", "error", err)
	}
	metrics.Global.IncrementFallbacksUsed()
	return truncateAtSentence(text, chunkFallbackChars)
}

// truncateAtWord cuts text to at most max runes without splitting a word.
func truncateAtWord(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

// truncateAtSentence cuts text to at most max runes, preferring a sentence
// boundary and falling back to a word boundary.
func truncateAtSentence(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, ". "); idx > 0 {
		return strings.TrimSpace(cut[:idx+1])
	}
	return truncateAtWord(text, max)
}

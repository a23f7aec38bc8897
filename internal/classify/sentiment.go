package classify

import (
	"context"
	"strings"

	"finbrief/internal/logger"
	"finbrief/internal/metrics"
)

// Bullish/bearish indicator lexicons for the heuristic strategy. Multi-word
// entries match as phrases; short entries get word-boundary treatment via
// countKeyword.
var bullishWords = []string{
	"gain", "rise", "surge", "rally", "increase", "growth", "strong",
	"beat", "exceed", "outperform", "profit", "jump", "soar", "climb",
	"record high", "bullish", "upgrade", "green",
}

var bearishWords = []string{
	"loss", "fall", "drop", "decline", "crash", "plunge", "weak",
	"miss", "disappoint", "underperform", "deficit", "sell-off", "slump",
	"record low", "bearish", "downgrade", "red",
}

// LexiconSentiment is the heuristic strategy: count bullish vs bearish
// indicators; one side must lead by more than one to leave neutral.
type LexiconSentiment struct{}

func (LexiconSentiment) Detect(_ context.Context, text string) string {
	text = strings.ToLower(text)

	bulls, bears := 0, 0
	for _, w := range bullishWords {
		bulls += countKeyword(text, w)
	}
	for _, w := range bearishWords {
		bears += countKeyword(text, w)
	}

	switch {
	case bulls > bears+1:
		return Positive
	case bears > bulls+1:
		return Negative
	default:
		return Neutral
	}
}

// SentimentModel is the external classification collaborator consumed by the
// model-backed strategy.
type SentimentModel interface {
	Sentiment(ctx context.Context, text string) (string, error)
}

// ModelSentiment delegates polarity to the external classifier and maps its
// label space onto the closed set. Call failures fall back to the lexicon so
// a bad model call never fails the request.
type ModelSentiment struct {
	Model SentimentModel
}

func (m ModelSentiment) Detect(ctx context.Context, text string) string {
	label, err := m.Model.Sentiment(ctx, text)
	if err != nil {
		logger.Warn("sentiment model call failed, using lexicon fallback", "error", err)
		metrics.Global.IncrementFallbacksUsed()
		return LexiconSentiment{}.Detect(ctx, text)
	}

	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive", "bullish":
		return Positive
	case "negative", "bearish":
		return Negative
	default:
		return Neutral
	}
}

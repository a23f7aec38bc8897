// Package classify buckets an article into a narrative category, detects its
// sentiment polarity and picks the main subject.
package classify

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"finbrief/internal/logger"
)

// Sentiment polarity labels. The closed set every strategy maps onto.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Result is the classification outcome for one article.
type Result struct {
	Category  string
	Sentiment string
	Subject   string
}

// SentimentStrategy detects polarity for one article. Implementations must be
// safe for concurrent use.
type SentimentStrategy interface {
	Detect(ctx context.Context, text string) string
}

// Classifier scores articles against the category table.
type Classifier struct {
	table     *Table
	sentiment SentimentStrategy
}

func New(table *Table, sentiment SentimentStrategy) *Classifier {
	return &Classifier{table: table, sentiment: sentiment}
}

// Classify scores each category's keywords against text+summary, picks the
// best match (first-seen wins ties, fallback on all zeros), and runs the
// configured sentiment strategy.
func (c *Classifier) Classify(ctx context.Context, text, summary string) Result {
	combined := strings.ToLower(text + " " + summary)

	best := c.table.Fallback
	bestScore := 0
	for _, cat := range c.table.Categories {
		score := 0
		for _, kw := range cat.Keywords {
			score += countKeyword(combined, kw)
		}
		if score > bestScore {
			bestScore = score
			best = cat.Name
		}
	}
	if bestScore == 0 {
		logger.Debug("no category keywords matched, using fallback", "fallback", c.table.Fallback)
	}

	return Result{
		Category:  best,
		Sentiment: c.sentiment.Detect(ctx, combined),
		Subject:   extractSubject(text),
	}
}

// countKeyword counts occurrences of kw in lower-cased text. Phrases and
// longer words match as substrings; tokens of three letters or fewer require
// word boundaries so "ai" never matches "said".
func countKeyword(text, kw string) int {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return 0
	}

	if !strings.Contains(kw, " ") && len(kw) <= 3 {
		return len(boundaryPattern(kw).FindAllString(text, -1))
	}

	return strings.Count(text, kw)
}

// Keywords come from the YAML table at runtime, so boundary patterns are
// compiled lazily and cached for every Classify call after the first.
var (
	boundaryMu sync.Mutex
	boundaryRe = map[string]*regexp.Regexp{}
)

func boundaryPattern(kw string) *regexp.Regexp {
	boundaryMu.Lock()
	defer boundaryMu.Unlock()
	re, ok := boundaryRe[kw]
	if !ok {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		boundaryRe[kw] = re
	}
	return re
}

var (
	reTicker  = regexp.MustCompile(`\b[A-Z]{2,5}\b`)
	reCompany = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	reFinTerm = regexp.MustCompile(`(?i)\b(bitcoin|ethereum|tesla|apple|microsoft|amazon|meta|google|nvidia|btc|eth|nasdaq|dow|treasury|dollar|euro)\b`)
	tickerNoise = map[string]bool{
		"THE": true, "AND": true, "FOR": true, "ARE": true, "BUT": true,
		"NOT": true, "YOU": true, "ALL": true, "CAN": true, "WAS": true,
		"ONE": true, "OUR": true, "HAD": true, "HAS": true, "NEW": true,
		"CEO": true, "CFO": true, "CTO": true, "USD": true, "GDP": true,
		"CPI": true, "ETF": true, "IPO": true,
	}
	defaultSubject = "Markets"
)

// extractSubject prefers a ticker-looking token, then a recognized financial
// or company term, then the first capitalized entity.
func extractSubject(text string) string {
	for _, t := range reTicker.FindAllString(text, -1) {
		if !tickerNoise[t] {
			return t
		}
	}
	if m := reFinTerm.FindString(text); m != "" {
		return capitalize(strings.ToLower(m))
	}
	if m := reCompany.FindString(text); m != "" {
		return m
	}
	return defaultSubject
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

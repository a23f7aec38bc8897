// Package narrative assembles the brief paragraph: a factual opening, a
// transition, category analysis and a forward-looking insight. Phrase choice
// uses an injected rand source so output is reproducible under a fixed seed.
package narrative

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"finbrief/internal/classify"
	"finbrief/internal/config"
	"finbrief/internal/facts"
	"finbrief/internal/textutil"
)

const openingMaxWords = 40

var sentimentEmoji = map[string]string{
	classify.Positive: "📈",
	classify.Negative: "📉",
	classify.Neutral:  "📊",
}

var (
	reMultiDot   = regexp.MustCompile(`\.\.+`)
	reMultiSpace = regexp.MustCompile(`\s+`)
	reSpaceDot   = regexp.MustCompile(`\s+([.,;:])`)
)

type Assembler struct {
	rng *rand.Rand
	cfg config.Config
}

func New(rng *rand.Rand, cfg config.Config) *Assembler {
	return &Assembler{rng: rng, cfg: cfg}
}

// Paragraph builds the four-part narrative from the model summary, the raw
// article text, the extracted facts and the classified category.
func (a *Assembler) Paragraph(summaryText, rawText string, kf facts.KeyFacts, cat classify.Category, sentiment string) string {
	parts := []string{
		a.opening(summaryText, rawText, kf),
		a.transition(cat),
		a.analysis(cat, sentiment),
		a.insight(cat, sentiment),
	}
	return cleanup(strings.Join(parts, " "))
}

// opening states what happened. Standard mode keeps the model summary whole;
// fast mode skips the model and caps the leading substantive raw sentences.
func (a *Assembler) opening(summaryText, rawText string, kf facts.KeyFacts) string {
	var text string
	if a.cfg.FastMode {
		text = capWords(leadingSentences(rawText, 2), openingMaxWords)
	} else {
		text = strings.TrimSpace(summaryText)
		if text == "" {
			text = capWords(leadingSentences(rawText, 2), openingMaxWords)
		}
	}

	// Surface the strongest number when the opening doesn't already carry it.
	if len(kf.Percentages) > 0 && !strings.Contains(text, kf.Percentages[0]) {
		text = strings.TrimSuffix(text, ".")
		text = fmt.Sprintf("%s, with %s movements observed.", text, kf.Percentages[0])
	}
	return ensurePeriod(text)
}

func (a *Assembler) transition(cat classify.Category) string {
	if len(cat.Transitions) == 0 {
		return "Looking at the market reaction,"
	}
	return cat.Transitions[a.rng.Intn(len(cat.Transitions))]
}

// analysis draws between MinBulletPoints and MaxBulletPoints fragments from
// the category pool for the detected sentiment, without repeats.
func (a *Assembler) analysis(cat classify.Category, sentiment string) string {
	pool := cat.Analysis[sentiment]
	if len(pool) == 0 {
		pool = cat.Analysis[classify.Neutral]
	}
	if len(pool) == 0 {
		return "we're seeing mixed signals across the board."
	}

	want := a.cfg.MinBulletPoints
	if len(pool) > a.cfg.MinBulletPoints {
		want += a.rng.Intn(min(len(pool), a.cfg.MaxBulletPoints) - a.cfg.MinBulletPoints + 1)
	}
	if want > len(pool) {
		want = len(pool)
	}

	picked := a.rng.Perm(len(pool))[:want]
	frags := make([]string, want)
	for i, idx := range picked {
		frags[i] = strings.TrimSuffix(pool[idx], ".")
	}
	return strings.Join(frags, ", and ") + "."
}

func (a *Assembler) insight(cat classify.Category, sentiment string) string {
	pool := cat.Insights[sentiment]
	if len(pool) == 0 {
		pool = cat.Insights[classify.Neutral]
	}

	emoji := sentimentEmoji[sentiment]
	if emoji == "" {
		emoji = sentimentEmoji[classify.Neutral]
	}
	if len(pool) == 0 {
		return "Worth keeping on the radar. " + emoji
	}
	return ensurePeriod(pool[a.rng.Intn(len(pool))]) + " " + emoji
}

// leadingSentences returns the first n sentences of at least six words each.
func leadingSentences(text string, n int) string {
	var kept []string
	for _, s := range textutil.Sentences(text) {
		if len(strings.Fields(s)) < 6 {
			continue
		}
		kept = append(kept, s)
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, " ")
}

func capWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:max], " ")
}

func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?', ',':
		return s
	}
	return s + "."
}

func cleanup(s string) string {
	s = reMultiDot.ReplaceAllString(s, ".")
	s = reSpaceDot.ReplaceAllString(s, "$1")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

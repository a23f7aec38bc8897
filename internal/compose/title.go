// Package compose builds the short outputs of a brief: the condensed title
// and the hashtag list.
package compose

import (
	"sort"
	"strings"
	"unicode"

	"finbrief/internal/config"
)

const fallbackTitle = "News Update"

// actionVerbs are movement words that should survive title condensation.
var actionVerbs = map[string]bool{
	"surges": true, "surge": true, "soars": true, "jumps": true, "rallies": true,
	"gains": true, "climbs": true, "rises": true, "beats": true, "wins": true,
	"plunges": true, "crashes": true, "falls": true, "drops": true, "tumbles": true,
	"sinks": true, "slides": true, "misses": true, "cuts": true, "slashes": true,
	"announces": true, "reports": true, "launches": true, "approves": true,
	"rejects": true, "warns": true, "raises": true, "lowers": true,
}

// financialTerms anchor a headline to its market subject.
var financialTerms = map[string]bool{
	"earnings": true, "revenue": true, "profit": true, "guidance": true,
	"stock": true, "stocks": true, "shares": true, "market": true, "markets": true,
	"fed": true, "rates": true, "rate": true, "inflation": true, "tariff": true,
	"tariffs": true, "bitcoin": true, "crypto": true, "ethereum": true,
	"ipo": true, "dividend": true, "merger": true, "acquisition": true,
	"quarterly": true, "forecast": true, "outlook": true, "treasury": true,
}

var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "to": true, "in": true,
	"on": true, "for": true, "and": true, "or": true, "but": true, "with": true,
	"as": true, "at": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "it": true, "its": true, "this": true,
	"that": true, "from": true, "after": true, "amid": true, "over": true,
}

type scoredWord struct {
	word  string
	pos   int
	score int
}

// Title condenses a headline to at most cfg.MaxTitleWords words, keeping the
// highest-scoring words in their original order. Scoring favors early
// position, proper nouns, numbers, action verbs and financial vocabulary.
// When fewer than two words score positive the original leading words are
// kept verbatim. An empty headline falls back to "<subject> Update".
func Title(original, subject string, cfg config.Config) string {
	words := strings.Fields(strings.TrimSpace(original))
	if len(words) == 0 {
		if subject != "" {
			return subject + " Update"
		}
		return fallbackTitle
	}
	if len(words) <= cfg.MaxTitleWords {
		return strings.Join(words, " ")
	}

	scored := make([]scoredWord, 0, len(words))
	for i, w := range words {
		s := scoreWord(w, i)
		if s > 0 {
			scored = append(scored, scoredWord{word: w, pos: i, score: s})
		}
	}

	// Too little signal to condense; take the leading words as-is.
	if len(scored) < 2 {
		return strings.Join(words[:cfg.MaxTitleWords], " ")
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].pos < scored[j].pos
	})
	if len(scored) > cfg.MaxTitleWords {
		scored = scored[:cfg.MaxTitleWords]
	}

	// Restore reading order after selection.
	sort.Slice(scored, func(i, j int) bool { return scored[i].pos < scored[j].pos })

	out := make([]string, len(scored))
	for i, sw := range scored {
		out[i] = sw.word
	}
	return strings.Join(out, " ")
}

func scoreWord(word string, pos int) int {
	clean := strings.ToLower(strings.Trim(word, ".,;:!?\"'()"))
	if clean == "" || fillerWords[clean] {
		return 0
	}

	score := 0
	switch {
	case pos < 5:
		score += 3
	case pos < 10:
		score += 2
	case pos < 15:
		score += 1
	}

	if hasDigitOrCurrency(word) {
		score += 2
	}
	if isAllCaps(word) {
		score += 2
	} else if r := []rune(word); unicode.IsUpper(r[0]) && pos > 0 {
		score++
	}
	if actionVerbs[clean] {
		score += 2
	}
	if financialTerms[clean] {
		score += 3
	}
	return score
}

func hasDigitOrCurrency(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) || r == '$' || r == '%' {
			return true
		}
	}
	return false
}

func isAllCaps(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 2
}

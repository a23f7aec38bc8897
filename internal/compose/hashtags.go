package compose

import (
	"strings"
	"unicode"

	"finbrief/internal/config"
	"finbrief/internal/textutil"
)

// baseKeywords are always candidates regardless of which category won, so an
// article still tags its obvious subjects when the table's buckets miss them.
var baseKeywords = []string{
	"bitcoin", "crypto", "ethereum", "stocks", "earnings", "fed", "inflation",
	"nasdaq", "etf", "ipo", "dividend", "treasury", "recession",
}

// genericTags pad the hashtag list when the article matched too few keywords.
var genericTags = []string{"#News", "#Finance", "#Trading", "#Market", "#Investment"}

// Hashtags derives tags from the keywords found in the article text (the
// caller passes the category table's keywords; the base financial list is
// always appended), padded with generic tags up to cfg.MinHashtags and capped
// at cfg.MaxHashtags. Tags are deduplicated case-insensitively.
func Hashtags(text string, keywords []string, cfg config.Config) []string {
	lower := strings.ToLower(text)
	wordSet := make(map[string]bool)
	for _, w := range textutil.Words(text) {
		wordSet[w] = true
	}

	tags := make([]string, 0, cfg.MaxHashtags)
	seen := make(map[string]bool)

	add := func(tag string) bool {
		key := strings.ToLower(tag)
		if seen[key] {
			return false
		}
		seen[key] = true
		tags = append(tags, tag)
		return len(tags) >= cfg.MaxHashtags
	}

	for _, kw := range append(append([]string{}, keywords...), baseKeywords...) {
		if !keywordInText(kw, lower, wordSet) {
			continue
		}
		if add(toTag(kw)) {
			return tags
		}
	}

	for i := 0; len(tags) < cfg.MinHashtags; i++ {
		add(genericTags[i%len(genericTags)])
		if i >= len(genericTags) {
			break
		}
	}
	return tags
}

// keywordInText matches single words against the tokenized word set, so
// "eth" never fires inside "whether"; multi-word phrases need the exact
// phrase in the lowered text.
func keywordInText(kw, lower string, wordSet map[string]bool) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return false
	}
	if strings.Contains(kw, " ") {
		return strings.Contains(lower, kw)
	}
	return wordSet[kw]
}

// toTag turns a keyword like "interest rate" into "#InterestRate".
func toTag(keyword string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, part := range strings.Fields(keyword) {
		runes := []rune(part)
		kept := make([]rune, 0, len(runes))
		for _, r := range runes {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		kept[0] = unicode.ToUpper(kept[0])
		b.WriteString(string(kept))
	}
	return b.String()
}

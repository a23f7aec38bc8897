package textutil

import (
	"strings"
	"unicode"
)

// Common abbreviations that end with a period but do not close a sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"inc": true, "corp": true, "co": true, "ltd": true, "jr": true,
	"sr": true, "st": true, "vs": true, "etc": true, "approx": true,
	"dept": true, "est": true, "no": true, "u.s": true, "u.k": true,
}

// Sentences splits text on sentence boundaries. It is intentionally simple:
// terminal punctuation followed by whitespace and an upper-case/digit start,
// with guards for decimals ("4.5%") and common abbreviations ("Inc.").
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Decimal point: digits on both sides.
		if r == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}

		if r == '.' && isAbbreviation(runes, start, i) {
			continue
		}

		// Consume trailing closers like quotes or extra punctuation.
		end := i + 1
		for end < len(runes) && (runes[end] == '"' || runes[end] == '\'' || runes[end] == ')' || runes[end] == '.') {
			end++
		}

		// A boundary needs whitespace after it, then an upper-case letter or
		// digit, or end of input.
		j := end
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == end && end < len(runes) {
			continue
		}
		if j < len(runes) && !unicode.IsUpper(runes[j]) && !unicode.IsDigit(runes[j]) && runes[j] != '"' && runes[j] != '\'' {
			continue
		}

		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = j
		i = j - 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isAbbreviation(runes []rune, start, dot int) bool {
	// Walk back to the start of the word preceding the period.
	w := dot
	for w > start && (unicode.IsLetter(runes[w-1]) || runes[w-1] == '.') {
		w--
	}
	word := strings.ToLower(strings.TrimSuffix(string(runes[w:dot]), "."))
	return abbreviations[word]
}

// Words splits text into lower-cased word tokens, dropping punctuation.
// Used for hashtag keyword matching and lexicon scans.
func Words(text string) []string {
	var words []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			words = append(words, strings.ToLower(b.String()))
			b.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '\'' || r == '-') && b.Len() > 0:
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	// Trim trailing apostrophes/hyphens left by the permissive loop.
	for i, w := range words {
		words[i] = strings.TrimRight(w, "'-")
	}
	return words
}

// EstimateTokens approximates a subword-tokenizer count from the word count.
// Subword vocabularies average roughly 4 tokens per 3 English words; callers
// treat this as a budget heuristic, never as an exact count.
func EstimateTokens(text string) int {
	n := len(strings.Fields(text))
	if n == 0 {
		return 0
	}
	return (n*4 + 2) / 3
}

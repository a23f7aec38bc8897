// Package facts extracts structured data points from raw article text via
// pattern scans. Extraction is pure: no external calls, empty results on no
// matches, never an error.
package facts

import (
	"regexp"
	"strings"
)

// KeyFacts holds the numeric and entity data pulled from one article. All
// lists are capped so template substitution downstream stays bounded.
type KeyFacts struct {
	Percentages []string
	Prices      []string
	Entities    []string
	Dates       []string
	Magnitudes  []string
}

const (
	maxPercentages = 3
	maxPrices      = 5
	maxEntities    = 3
	maxDates       = 3
	maxMagnitudes  = 3
)

var (
	rePercent = regexp.MustCompile(`\d+(?:\.\d+)?%`)
	rePrice   = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d+)?`)
	reEntity  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	reDate    = regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:,\s*\d{4})?|\bQ[1-4]\b|\b(?:first|second|third|fourth)\s+quarter\b`)
	reMagnit  = regexp.MustCompile(`(?i)\b(\d+(?:,\d{3})*(?:\.\d+)?)\s+(million|billion|trillion|thousand)\b`)
)

// Capitalized words that open sentences without naming anything.
var entityStopwords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"With": true, "From": true, "Over": true, "Under": true, "During": true,
	"After": true, "Before": true, "While": true, "When": true, "Where": true,
	"But": true, "And": true, "For": true, "Its": true, "His": true,
	"Her": true, "They": true, "There": true, "Here": true, "However": true,
	"Meanwhile": true, "According": true,
}

// Extract scans text for percentages, prices, named entities, calendar and
// quarter references, and magnitude phrases.
func Extract(text string) KeyFacts {
	kf := KeyFacts{}

	kf.Percentages = capList(rePercent.FindAllString(text, -1), maxPercentages)
	kf.Prices = capList(rePrice.FindAllString(text, -1), maxPrices)

	seen := map[string]bool{}
	for _, m := range reEntity.FindAllString(text, -1) {
		if len(m) <= 2 || entityStopwords[m] || seen[m] {
			continue
		}
		seen[m] = true
		kf.Entities = append(kf.Entities, m)
		if len(kf.Entities) >= maxEntities {
			break
		}
	}

	kf.Dates = capList(reDate.FindAllString(text, -1), maxDates)

	for _, m := range reMagnit.FindAllStringSubmatch(text, -1) {
		kf.Magnitudes = append(kf.Magnitudes, m[1]+" "+strings.ToLower(m[2]))
		if len(kf.Magnitudes) >= maxMagnitudes {
			break
		}
	}

	return kf
}

func capList(matches []string, n int) []string {
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}

package facts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPercentagesAndPrices(t *testing.T) {
	kf := Extract("Acme shares surged 50% to $120.50 after a 3.5% dividend raise.")
	assert.Equal(t, []string{"50%", "3.5%"}, kf.Percentages)
	assert.Equal(t, []string{"$120.50"}, kf.Prices)
}

func TestExtractEntities(t *testing.T) {
	kf := Extract("Goldman Sachs and Morgan Stanley lifted targets. The move surprised nobody.")
	assert.Contains(t, kf.Entities, "Goldman Sachs")
	assert.Contains(t, kf.Entities, "Morgan Stanley")
	assert.NotContains(t, kf.Entities, "The")
}

func TestExtractDatesAndQuarters(t *testing.T) {
	kf := Extract("Results land on March 14, 2025, covering Q4 and the first quarter outlook.")
	assert.Contains(t, kf.Dates, "March 14, 2025")
	assert.Contains(t, kf.Dates, "Q4")
}

func TestExtractMagnitudes(t *testing.T) {
	kf := Extract("Revenue hit 2.5 billion while costs stayed near 400 Million.")
	assert.Equal(t, []string{"2.5 billion", "400 million"}, kf.Magnitudes)
}

func TestExtractEmptyOnNoMatches(t *testing.T) {
	kf := Extract("nothing numeric here at all")
	assert.Empty(t, kf.Percentages)
	assert.Empty(t, kf.Prices)
	assert.Empty(t, kf.Entities)
	assert.Empty(t, kf.Dates)
	assert.Empty(t, kf.Magnitudes)
}

func TestExtractCapsAreBounded(t *testing.T) {
	kf := Extract(strings.Repeat("up 5% and $10 moved 3 billion in Q1. ", 10))
	assert.LessOrEqual(t, len(kf.Percentages), 3)
	assert.LessOrEqual(t, len(kf.Prices), 5)
	assert.LessOrEqual(t, len(kf.Dates), 3)
	assert.LessOrEqual(t, len(kf.Magnitudes), 3)
}

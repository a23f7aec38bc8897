package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return &Table{
		Fallback: "stock_movement",
		Categories: []Category{
			{
				Name:     "crypto",
				Keywords: []string{"bitcoin", "btc", "ethereum"},
			},
			{
				Name:     "earnings",
				Keywords: []string{"earnings", "revenue", "guidance"},
			},
			{
				Name:     "stock_movement",
				Keywords: []string{"stock", "shares", "rally"},
			},
		},
	}
}

func TestClassifyPicksHighestScoringCategory(t *testing.T) {
	c := New(testTable(), LexiconSentiment{})

	res := c.Classify(context.Background(), "Bitcoin and ethereum rallied as BTC broke out", "bitcoin leads")
	assert.Equal(t, "crypto", res.Category)
}

func TestClassifyFallbackOnNoMatches(t *testing.T) {
	c := New(testTable(), LexiconSentiment{})

	res := c.Classify(context.Background(), "weather was mild across the region today", "")
	assert.Equal(t, "stock_movement", res.Category)
}

func TestClassifyTieBreaksFirstSeen(t *testing.T) {
	c := New(testTable(), LexiconSentiment{})

	// one crypto keyword, one earnings keyword: crypto is declared first
	res := c.Classify(context.Background(), "bitcoin holders watched the earnings news", "")
	assert.Equal(t, "crypto", res.Category)
}

func TestCountKeywordShortTokensNeedBoundaries(t *testing.T) {
	assert.Equal(t, 0, countKeyword("the maintainer said so", "ai"))
	assert.Equal(t, 1, countKeyword("ai adoption is accelerating", "ai"))
	assert.Equal(t, 2, countKeyword("btc rose while btc futures lagged", "btc"))
}

func TestBoundaryPatternCompilesOnce(t *testing.T) {
	first := boundaryPattern("eth")
	second := boundaryPattern("eth")
	assert.Same(t, first, second)

	assert.Equal(t, 1, countKeyword("eth gained while tether slipped", "eth"))
	assert.Equal(t, 1, countKeyword("eth gained while tether slipped", "eth"))
}

func TestCountKeywordPhrasesMatchSubstrings(t *testing.T) {
	assert.Equal(t, 1, countKeyword("the federal reserve held steady", "federal reserve"))
	assert.Equal(t, 1, countKeyword("hyperinflation fears", "inflation"))
}

func TestExtractSubjectPrefersTicker(t *testing.T) {
	assert.Equal(t, "TSLA", extractSubject("TSLA jumped 8% after the CEO spoke"))
}

func TestExtractSubjectSkipsNoiseTickers(t *testing.T) {
	// CEO and CPI are noise; bitcoin is the recognized term
	assert.Equal(t, "Bitcoin", extractSubject("CEO comments on CPI moved bitcoin today"))
}

func TestExtractSubjectDefault(t *testing.T) {
	assert.Equal(t, "Markets", extractSubject("quiet session with little to report"))
}

func TestLexiconSentimentMargins(t *testing.T) {
	s := LexiconSentiment{}
	ctx := context.Background()

	assert.Equal(t, Positive, s.Detect(ctx, "shares surge and rally on strong profit growth"))
	assert.Equal(t, Negative, s.Detect(ctx, "stocks crash and plunge after weak results decline"))
	// one bullish vs zero bearish is inside the neutral margin
	assert.Equal(t, Neutral, s.Detect(ctx, "a modest gain was recorded"))
	assert.Equal(t, Neutral, s.Detect(ctx, "nothing much happened in the session"))
}

func TestModelSentimentMapsLabels(t *testing.T) {
	ctx := context.Background()

	m := ModelSentiment{Model: stubModel{label: "bullish"}}
	assert.Equal(t, Positive, m.Detect(ctx, "whatever"))

	m = ModelSentiment{Model: stubModel{label: "negative"}}
	assert.Equal(t, Negative, m.Detect(ctx, "whatever"))

	m = ModelSentiment{Model: stubModel{label: "mixed"}}
	assert.Equal(t, Neutral, m.Detect(ctx, "whatever"))
}

func TestModelSentimentFallsBackOnError(t *testing.T) {
	m := ModelSentiment{Model: stubModel{err: assert.AnError}}

	got := m.Detect(context.Background(), "shares surge and rally on strong profit growth")
	assert.Equal(t, Positive, got)
}

func TestLoadTableValidates(t *testing.T) {
	_, err := LoadTable("does-not-exist.yaml")
	require.Error(t, err)
}

type stubModel struct {
	label string
	err   error
}

func (s stubModel) Sentiment(context.Context, string) (string, error) {
	return s.label, s.err
}

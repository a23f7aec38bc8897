package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"finbrief/internal/config"
)

func TestHashtagsFromMatchedKeywords(t *testing.T) {
	cfg := config.Standard()
	keywords := []string{"bitcoin", "ethereum", "defi", "interest rate"}

	got := Hashtags("Bitcoin and DeFi protocols rallied after the interest rate decision", keywords, cfg)

	assert.Contains(t, got, "#Bitcoin")
	assert.Contains(t, got, "#Defi")
	assert.Contains(t, got, "#InterestRate")
	assert.NotContains(t, got, "#Ethereum")
}

func TestHashtagsBounds(t *testing.T) {
	cfg := config.Standard()

	few := Hashtags("nothing matches here", nil, cfg)
	assert.GreaterOrEqual(t, len(few), cfg.MinHashtags)
	assert.LessOrEqual(t, len(few), cfg.MaxHashtags)

	many := Hashtags("bitcoin ethereum defi nft token coin blockchain altcoin",
		[]string{"bitcoin", "ethereum", "defi", "nft", "token", "coin", "blockchain", "altcoin"}, cfg)
	assert.Len(t, many, cfg.MaxHashtags)
}

func TestHashtagsPadWithGenerics(t *testing.T) {
	cfg := config.Standard()
	got := Hashtags("quiet day with no keyword overlap", []string{"bitcoin"}, cfg)

	assert.GreaterOrEqual(t, len(got), cfg.MinHashtags)
	for _, tag := range got {
		assert.True(t, strings.HasPrefix(tag, "#"), "tag %q must start with #", tag)
	}
}

func TestHashtagsBaseFinancialList(t *testing.T) {
	cfg := config.Standard()

	got := Hashtags("Inflation cooled in July while treasury yields slipped", nil, cfg)

	assert.Contains(t, got, "#Inflation")
	assert.Contains(t, got, "#Treasury")
}

func TestHashtagsMatchWholeWordsOnly(t *testing.T) {
	cfg := config.Standard()

	miss := Hashtags("federal regulators weighed whether to act", []string{"fed", "eth"}, cfg)
	assert.NotContains(t, miss, "#Fed")
	assert.NotContains(t, miss, "#Eth")

	hit := Hashtags("the fed held rates while eth traded flat", []string{"fed", "eth"}, cfg)
	assert.Contains(t, hit, "#Fed")
	assert.Contains(t, hit, "#Eth")
}

func TestHashtagsDeduplicate(t *testing.T) {
	cfg := config.Standard()
	got := Hashtags("bitcoin bitcoin bitcoin", []string{"bitcoin", "Bitcoin", "BITCOIN"}, cfg)

	seen := map[string]bool{}
	for _, tag := range got {
		key := strings.ToLower(tag)
		assert.False(t, seen[key], "duplicate tag %q", tag)
		seen[key] = true
	}
}

package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsMarkup(t *testing.T) {
	in := `<html><body><script>var x = 1;</script><p>Stocks climbed on Friday.</p><nav>Home News</nav></body></html>`
	got := Normalize(in)
	assert.Contains(t, got, "Stocks climbed on Friday.")
	assert.NotContains(t, got, "var x")
	assert.NotContains(t, got, "<p>")
}

func TestNormalizeStripsWebArtifacts(t *testing.T) {
	in := "Markets surged [chart] (see below) today https://example.com/a?b=c after the report. Getty Images"
	got := Normalize(in)
	assert.NotContains(t, got, "[chart]")
	assert.NotContains(t, got, "(see below)")
	assert.NotContains(t, got, "https://")
	assert.NotContains(t, got, "Getty")
	assert.Contains(t, got, "Markets surged")
}

func TestNormalizeDecodesEntities(t *testing.T) {
	got := Normalize("Johnson &amp; Johnson said it&#39;s fine")
	assert.Equal(t, "Johnson & Johnson said it's fine", got)
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("a  lot\n\nof\t\tspace")
	assert.Equal(t, "a lot of space", got)
}

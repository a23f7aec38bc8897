// Package textutil provides the text normalization and tokenization layer
// everything else in the pipeline builds on.
package textutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reTags         = regexp.MustCompile(`<[^>]+>`)
	reBrackets     = regexp.MustCompile(`\[[^\]]*\]`)
	reParens       = regexp.MustCompile(`\([^)]*\)`)
	reURLs         = regexp.MustCompile(`https?://\S+`)
	reWireCredits  = regexp.MustCompile(`AFP/Getty Images|Getty Images|Reuters|\bAP\b`)
	rePhotoCaption = regexp.MustCompile(`This picture taken on.*?\.`)
	reRelated      = regexp.MustCompile(`(?m)Related article.*$`)
	reNavDash      = regexp.MustCompile(`CNN\s*—\s*`)
	reSpaces       = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#39;", "'",
	"&nbsp;", " ",
)

// Normalize strips markup, web artifacts and boilerplate from raw article
// text and collapses whitespace. Scraped pages often arrive with tags intact,
// so markup-looking input goes through a real HTML parse first.
func Normalize(text string) string {
	if strings.Contains(text, "<") && strings.Contains(text, ">") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			doc.Find("script, style, nav, aside, figure").Remove()
			if t := strings.TrimSpace(doc.Text()); t != "" {
				text = t
			}
		}
		// Leftover fragments from malformed markup
		text = reTags.ReplaceAllString(text, "")
	}

	text = reBrackets.ReplaceAllString(text, "")
	text = reParens.ReplaceAllString(text, "")
	text = reURLs.ReplaceAllString(text, "")
	text = reWireCredits.ReplaceAllString(text, "")
	text = rePhotoCaption.ReplaceAllString(text, "")
	text = reRelated.ReplaceAllString(text, "")
	text = reNavDash.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)

	text = reSpaces.ReplaceAllString(strings.TrimSpace(text), " ")
	return text
}

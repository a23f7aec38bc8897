// Package fetch pulls articles in from outside: RSS feeds for headlines and
// URL extraction for full text.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"finbrief/internal/logger"
)

// Article is one fetched piece ready for the pipeline.
type Article struct {
	Title string
	Body  string
	URL   string
}

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// FetchAllFeeds downloads and parses every feed, collecting items across
// feeds. Individual feed failures are logged and skipped.
func FetchAllFeeds(ctx context.Context, urls []string) ([]*gofeed.Item, error) {
	parser := gofeed.NewParser()
	var allItems []*gofeed.Item
	successCount := 0

	for _, url := range urls {
		feed, err := parser.ParseURLWithContext(url, ctx)
		if err != nil {
			logger.Warn("feed parse failed", "url", url, "error", err)
			continue
		}
		allItems = append(allItems, feed.Items...)
		successCount++
		logger.Debug("feed loaded", "url", url, "items", len(feed.Items))
	}

	logger.Info("feeds processed", "ok", successCount, "total", len(urls))
	return allItems, nil
}

// ExtractArticle fetches a URL and extracts the readable article text,
// trying readability extraction first and a generic paragraph scrape second.
func ExtractArticle(ctx context.Context, url string) (*Article, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	parsedURL := resp.Request.URL
	art, err := readability.FromReader(resp.Body, parsedURL)
	if err == nil && strings.TrimSpace(art.TextContent) != "" {
		return &Article{
			Title: strings.TrimSpace(art.Title),
			Body:  strings.TrimSpace(art.TextContent),
			URL:   url,
		}, nil
	}
	if err != nil {
		logger.Debug("readability extraction failed, trying generic scrape", "url", url, "error", err)
	}

	// readability consumed the body; fetch again for the fallback pass
	resp2, err := client.Do(req.Clone(ctx))
	if err != nil {
		return nil, fmt.Errorf("error reloading page: %w", err)
	}
	defer resp2.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp2.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	body := extractGenericContent(doc)
	if body == "" {
		return nil, fmt.Errorf("can't get content from %s", url)
	}

	return &Article{
		Title: extractTitle(doc),
		Body:  body,
		URL:   url,
	}, nil
}

// extractGenericContent joins substantial paragraphs from common article
// containers, preferring the first selector that yields a real article.
func extractGenericContent(doc *goquery.Document) string {
	selectors := []string{"article p", "main p", ".article-body p", ".story-body p", "p"}

	best := ""
	for _, sel := range selectors {
		var paragraphs []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 50 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			return strings.Join(paragraphs, "\n\n")
		}
		if best == "" && len(paragraphs) > 0 {
			best = strings.Join(paragraphs, "\n\n")
		}
	}
	return best
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

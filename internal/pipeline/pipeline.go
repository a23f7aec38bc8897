// Package pipeline runs the full brief flow: normalize, validate, summarize,
// extract facts, classify, and compose the title, paragraph and hashtags.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"finbrief/internal/classify"
	"finbrief/internal/compose"
	"finbrief/internal/config"
	"finbrief/internal/facts"
	"finbrief/internal/logger"
	"finbrief/internal/metrics"
	"finbrief/internal/narrative"
	"finbrief/internal/summary"
	"finbrief/internal/textutil"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("invalid configuration")

	// ErrSummarizationFailed surfaces the orchestrator's terminal failure.
	ErrSummarizationFailed = summary.ErrSummarizationFailed
)

const maxTitleChars = 500

// Result is the complete brief for one article.
type Result struct {
	Title     string   `json:"title"`
	Paragraph string   `json:"paragraph"`
	Hashtags  []string `json:"hashtags"`
	Sentiment string   `json:"sentiment"`
}

type Pipeline struct {
	cfg        config.Config
	summarizer *summary.Summarizer
	classifier *classify.Classifier
	table      *classify.Table
	assembler  *narrative.Assembler
}

// New wires the pipeline. The model may be nil only when the summarizer is
// never reached, so it is rejected up front alongside bad configuration.
func New(cfg config.Config, model summary.Model, sentiment classify.SentimentStrategy, table *classify.Table, rng *rand.Rand) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: nil summarization model", ErrConfiguration)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil category table", ErrConfiguration)
	}
	if sentiment == nil {
		sentiment = classify.LexiconSentiment{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Pipeline{
		cfg:        cfg,
		summarizer: summary.New(model, cfg),
		classifier: classify.New(table, sentiment),
		table:      table,
		assembler:  narrative.New(rng, cfg),
	}, nil
}

// Summarize produces the brief for one article. Input is validated before
// any model call is made.
func (p *Pipeline) Summarize(ctx context.Context, title, body string) (Result, error) {
	start := time.Now()

	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > maxTitleChars {
		metrics.Global.IncrementInvalidInputs()
		return Result{}, fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, maxTitleChars)
	}

	body = textutil.Normalize(body)
	if utf8.RuneCountInString(body) < p.cfg.MinBodyChars {
		metrics.Global.IncrementInvalidInputs()
		return Result{}, fmt.Errorf("%w: article body shorter than %d characters", ErrInvalidInput, p.cfg.MinBodyChars)
	}

	abstract, err := p.summarizer.Summarize(ctx, body)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return Result{}, err
	}

	kf := facts.Extract(body)
	cls := p.classifier.Classify(ctx, body, abstract)
	cat := p.table.Get(cls.Category)

	res := Result{
		Title:     compose.Title(title, cls.Subject, p.cfg),
		Paragraph: p.assembler.Paragraph(abstract, body, kf, cat, cls.Sentiment),
		Hashtags:  compose.Hashtags(title+" "+body, append(append([]string{}, cat.Keywords...), p.table.AllKeywords()...), p.cfg),
		Sentiment: cls.Sentiment,
	}

	metrics.Global.IncrementArticlesSummarized()
	metrics.Global.RecordProcessingTime(time.Since(start))
	metrics.Global.SetLastRun()

	logger.Info("article summarized",
		"category", cls.Category,
		"sentiment", cls.Sentiment,
		"hashtags", len(res.Hashtags),
		"duration", time.Since(start))

	return res, nil
}

// Package chunker splits normalized article text into token-budget-bounded,
// sentence-aligned segments for the summarization model.
package chunker

import (
	"strings"

	"finbrief/internal/textutil"
)

// Chunk is an ordered run of original sentences whose estimated token count
// stays within the budget it was built with.
type Chunk struct {
	Sentences []string
}

// Text joins the chunk's sentences with single spaces.
func (c Chunk) Text() string {
	return strings.Join(c.Sentences, " ")
}

// Split greedily accumulates sentences into chunks under maxTokens. A single
// sentence that alone exceeds the budget still becomes its own chunk rather
// than being dropped. Empty input yields nil.
func Split(text string, maxTokens int) []Chunk {
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []Chunk
	var current []string
	currentTokens := 0

	for _, sentence := range sentences {
		tokens := textutil.EstimateTokens(sentence)
		if len(current) > 0 && currentTokens+tokens > maxTokens {
			chunks = append(chunks, Chunk{Sentences: current})
			current = nil
			currentTokens = 0
		}
		current = append(current, sentence)
		currentTokens += tokens
	}

	if len(current) > 0 {
		chunks = append(chunks, Chunk{Sentences: current})
	}

	return chunks
}

// Batch collapses adjacent chunks into larger groups bounded by batchBudget
// tokens, reducing the number of model calls for long articles. Order is
// preserved; a chunk that alone exceeds the budget passes through unchanged.
func Batch(chunks []Chunk, batchBudget int) []Chunk {
	if len(chunks) <= 1 {
		return chunks
	}

	var batches []Chunk
	var current []string
	currentTokens := 0

	for _, c := range chunks {
		tokens := textutil.EstimateTokens(c.Text())
		if len(current) > 0 && currentTokens+tokens > batchBudget {
			batches = append(batches, Chunk{Sentences: current})
			current = nil
			currentTokens = 0
		}
		current = append(current, c.Sentences...)
		currentTokens += tokens
	}

	if len(current) > 0 {
		batches = append(batches, Chunk{Sentences: current})
	}

	return batches
}

package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"finbrief/internal/logger"
)

// Limiter tracks daily model-request budgets per capability. Limits of 0
// mean unlimited. Counters reset 24h after construction or last reset.
type Limiter struct {
	mu             sync.Mutex
	summaryCount   int
	sentimentCount int
	totalCount     int
	maxSummary     int
	maxSentiment   int
	maxTotal       int
	resetTime      time.Time
}

func New(maxSummary, maxSentiment, maxTotal int) *Limiter {
	return &Limiter{
		maxSummary:   maxSummary,
		maxSentiment: maxSentiment,
		maxTotal:     maxTotal,
		resetTime:    time.Now().Add(24 * time.Hour),
	}
}

// UseSummary reserves one summary request, or reports the budget as spent.
func (l *Limiter) UseSummary() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.maxSummary > 0 && l.summaryCount >= l.maxSummary {
		return fmt.Errorf("summary rate limit exceeded (%d/%d)", l.summaryCount, l.maxSummary)
	}
	if l.maxTotal > 0 && l.totalCount >= l.maxTotal {
		return fmt.Errorf("total model rate limit exceeded (%d/%d)", l.totalCount, l.maxTotal)
	}

	l.summaryCount++
	l.totalCount++
	return nil
}

// UseSentiment reserves one sentiment request.
func (l *Limiter) UseSentiment() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.maxSentiment > 0 && l.sentimentCount >= l.maxSentiment {
		return fmt.Errorf("sentiment rate limit exceeded (%d/%d)", l.sentimentCount, l.maxSentiment)
	}
	if l.maxTotal > 0 && l.totalCount >= l.maxTotal {
		return fmt.Errorf("total model rate limit exceeded (%d/%d)", l.totalCount, l.maxTotal)
	}

	l.sentimentCount++
	l.totalCount++
	return nil
}

// GetStats returns current usage counters.
func (l *Limiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	return map[string]interface{}{
		"summary_used":    l.summaryCount,
		"summary_limit":   l.maxSummary,
		"sentiment_used":  l.sentimentCount,
		"sentiment_limit": l.maxSentiment,
		"total_used":      l.totalCount,
		"total_limit":     l.maxTotal,
		"reset_time":      l.resetTime,
	}
}

func (l *Limiter) checkReset() {
	if time.Now().After(l.resetTime) {
		logger.Info("resetting model rate limiter counters",
			"summary_used", l.summaryCount,
			"sentiment_used", l.sentimentCount,
			"total_used", l.totalCount)

		l.summaryCount = 0
		l.sentimentCount = 0
		l.totalCount = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}
}

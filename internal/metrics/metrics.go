package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline activity for the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesSummarized int64
	SummaryCalls       int64
	SentimentCalls     int64
	ModelFailures      int64
	FallbacksUsed      int64
	InvalidInputs      int64
	TasksCreated       int64
	TasksExpired       int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementArticlesSummarized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSummarized++
}

func (m *Metrics) IncrementSummaryCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryCalls++
}

func (m *Metrics) IncrementSentimentCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentimentCalls++
}

func (m *Metrics) IncrementModelFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModelFailures++
}

func (m *Metrics) IncrementFallbacksUsed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbacksUsed++
}

func (m *Metrics) IncrementInvalidInputs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidInputs++
}

func (m *Metrics) IncrementTasksCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TasksCreated++
}

func (m *Metrics) AddTasksExpired(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TasksExpired += n
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_summarized":        m.ArticlesSummarized,
		"summary_calls":              m.SummaryCalls,
		"sentiment_calls":            m.SentimentCalls,
		"model_failures":             m.ModelFailures,
		"fallbacks_used":             m.FallbacksUsed,
		"invalid_inputs":             m.InvalidInputs,
		"tasks_created":              m.TasksCreated,
		"tasks_expired":              m.TasksExpired,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}

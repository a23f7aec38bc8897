package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbrief/internal/classify"
	"finbrief/internal/config"
	"finbrief/internal/pipeline"
	"finbrief/internal/tasks"
)

const article = `Acme Corp shares surged 18% in extended trading on Thursday after the company reported record quarterly earnings. Revenue climbed to $2.4 billion, exceeding analyst estimates by a wide margin. The company also raised its full-year guidance, citing strong demand across every segment.`

type echoModel struct{}

func (echoModel) Summarize(_ context.Context, text string, _, maxWords int) (string, error) {
	words := strings.Fields(text)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " "), nil
}

func testServer(t *testing.T) (*Server, *tasks.Store) {
	t.Helper()

	table := &classify.Table{
		Fallback: "stock_movement",
		Categories: []classify.Category{
			{
				Name:        "earnings",
				Keywords:    []string{"earnings", "revenue", "guidance"},
				Transitions: []string{"From an earnings analysis perspective,"},
				Analysis:    map[string][]string{"neutral": {"in-line results rarely move the needle"}},
				Insights:    map[string][]string{"neutral": {"Options flow will be the key catalyst"}},
			},
			{
				Name:     "stock_movement",
				Keywords: []string{"stock", "shares"},
				Analysis: map[string][]string{"neutral": {"mixed signals across the board"}},
				Insights: map[string][]string{"neutral": {"Range traders have opportunities"}},
			},
		},
	}

	pipe, err := pipeline.New(config.Standard(), echoModel{}, classify.LexiconSentiment{}, table, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	store := tasks.NewStore()
	t.Cleanup(store.Close)

	return New(pipe, store), store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSyncSummarize(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/summarize/sync", map[string]string{
		"title": "Acme Corp surges after earnings",
		"text":  article,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Title)
	assert.NotEmpty(t, res.Paragraph)
	assert.NotEmpty(t, res.Hashtags)
	assert.NotEmpty(t, res.Sentiment)
}

func TestSyncRejectsMissingFields(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/summarize/sync", map[string]string{"title": "only a title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncRejectsOverlongText(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/summarize/sync", map[string]string{
		"title": "big one",
		"text":  strings.Repeat("a", 10001),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncRejectsShortBody(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/summarize/sync", map[string]string{
		"title": "short",
		"text":  "not enough article text here",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsyncSummarizeLifecycle(t *testing.T) {
	s, store := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/summarize", map[string]string{
		"title": "Acme Corp surges after earnings",
		"text":  article,
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var accepted struct {
		TaskID string `json:"task_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.TaskID)

	require.Eventually(t, func() bool {
		task, ok := store.Get(accepted.TaskID)
		return ok && task.Status == tasks.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	w = doJSON(t, s, http.MethodGet, "/api/tasks/"+accepted.TaskID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "completed")
}

func TestGetUnknownTask(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectsOverlongTitle(t *testing.T) {
	s, _ := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/summarize", map[string]string{
		"title": strings.Repeat("t", 501),
		"text":  article,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

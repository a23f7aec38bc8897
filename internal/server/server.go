// Package server exposes the brief pipeline over HTTP: an async task flow
// for normal clients and a size-capped synchronous endpoint for tooling.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"finbrief/internal/logger"
	"finbrief/internal/metrics"
	"finbrief/internal/pipeline"
	"finbrief/internal/tasks"
)

const (
	maxTitleChars = 500
	maxSyncChars  = 10000

	// asyncTimeout bounds background jobs that outlive the HTTP request.
	asyncTimeout = 5 * time.Minute
)

type summarizeRequest struct {
	Title string `json:"title" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

type Server struct {
	engine *gin.Engine
	pipe   *pipeline.Pipeline
	store  *tasks.Store
}

func New(pipe *pipeline.Pipeline, store *tasks.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, pipe: pipe, store: store}

	api := engine.Group("/api")
	api.POST("/summarize", s.summarizeAsync)
	api.POST("/summarize/sync", s.summarizeSync)
	api.GET("/tasks/:id", s.getTask)
	api.GET("/health", s.health)
	api.GET("/metrics", s.stats)

	return s
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run(addr string) error {
	logger.Info("http server listening", "addr", addr)
	return s.engine.Run(addr)
}

// Handler exposes the router, used by tests and custom http.Server setups.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) summarizeAsync(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}

	id := s.store.Create()
	go s.process(id, req.Title, req.Text)

	c.JSON(http.StatusAccepted, gin.H{"task_id": id, "status": tasks.StatusPending})
}

func (s *Server) summarizeSync(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	if utf8.RuneCountInString(req.Text) > maxSyncChars {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text too long for synchronous processing, use /api/summarize"})
		return
	}

	result, err := s.pipe.Summarize(c.Request.Context(), req.Title, req.Text)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getTask(c *gin.Context) {
	task, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) health(c *gin.Context) {
	stats := metrics.Global.GetStats()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"time":       time.Now().UTC(),
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Global.GetStats())
}

// bind parses and validates the common request body. It writes the error
// response itself so handlers can just bail on !ok.
func (s *Server) bind(c *gin.Context) (summarizeRequest, bool) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and text are required"})
		return req, false
	}
	if utf8.RuneCountInString(req.Title) > maxTitleChars {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must be 500 characters or fewer"})
		return req, false
	}
	return req, true
}

func (s *Server) process(id, title, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
	defer cancel()

	s.store.SetProcessing(id)

	result, err := s.pipe.Summarize(ctx, title, text)
	if err != nil {
		logger.Error("background summarization failed", "task_id", id, "error", err)
		s.store.SetFailed(id, err)
		return
	}
	s.store.SetCompleted(id, result)
}

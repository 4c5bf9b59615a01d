package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/ppiankov/credence/internal/media"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/task"
	"go.uber.org/zap"
)

// Analyzer is the trust pipeline behind the API
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error)
}

// Server exposes the trust assessment pipeline over HTTP. Text analysis is
// synchronous; media uploads become asynchronous tasks polled by ID.
type Server struct {
	analyzer  Analyzer
	tasks     *task.Store
	runner    *media.Runner
	audioExt  media.TextExtractor
	imageExt  media.TextExtractor
	uploadDir string
	maxUpload int64
	minText   int
	logger    *zap.Logger
}

// Options configures optional server behavior
type Options struct {
	AudioExtractor media.TextExtractor
	ImageExtractor media.TextExtractor
	UploadDir      string
	MaxUpload      int64
	MinTextSize    int
}

// New creates an API server
func New(analyzer Analyzer, tasks *task.Store, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.UploadDir == "" {
		opts.UploadDir = os.TempDir()
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 25_000_000
	}
	if opts.MinTextSize <= 0 {
		opts.MinTextSize = 10
	}
	return &Server{
		analyzer:  analyzer,
		tasks:     tasks,
		runner:    media.NewRunner(tasks, analyzer, logger),
		audioExt:  opts.AudioExtractor,
		imageExt:  opts.ImageExtractor,
		uploadDir: opts.UploadDir,
		maxUpload: opts.MaxUpload,
		minText:   opts.MinTextSize,
		logger:    logger,
	}
}

// Router builds the HTTP route table
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(s.logger))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/text/analyze", s.handleAnalyzeText)
		r.Post("/audio/upload", s.handleUpload("audio", s.audioExt))
		r.Post("/image/upload", s.handleUpload("image", s.imageExt))
		r.Get("/tasks", s.handleListTasks)
		r.Get("/tasks/{id}", s.handleGetTask)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeTextRequest struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Text) < s.minText {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("text must be at least %d characters", s.minText))
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), model.AnalysisRequest{Text: req.Text, URL: req.URL})
	if err != nil {
		s.logger.Error("analysis failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleUpload accepts a multipart file, registers a task, and processes the
// upload in the background. Processing uses a fresh context so the work
// survives the upload request ending.
func (s *Server) handleUpload(kind string, extractor media.TextExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing or oversized file field")
			return
		}
		defer file.Close()

		status := s.tasks.Create(kind)

		path := filepath.Join(s.uploadDir, status.ID+filepath.Ext(header.Filename))
		dst, err := os.Create(path)
		if err != nil {
			s.logger.Error("failed to store upload", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to store upload")
			return
		}
		if _, err := io.Copy(dst, file); err != nil {
			dst.Close()
			os.Remove(path)
			respondError(w, http.StatusInternalServerError, "failed to store upload")
			return
		}
		dst.Close()

		go s.runner.Process(context.Background(), status.ID, path, extractor)

		respondJSON(w, http.StatusAccepted, status)
	}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.tasks.List())
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, found := s.tasks.Get(id)
	if !found {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers already written, nothing useful to do
		_ = err
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

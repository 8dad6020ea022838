// Package chi serves section extraction and analysis over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/analyze"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Analyzer produces extractions and analyses for a ticker.
type Analyzer interface {
	Analyze(ctx context.Context, req analyze.Request) (*tenk.Analysis, error)
	Extract(ctx context.Context, ticker, section string) (*tenk.Filing, *tenk.Extraction, error)
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	analyzer Analyzer
	analyses tenk.AnalysisService
	log      *slog.Logger

	// Renderer, when set, adds an HTML rendering of each summary to
	// analyze responses.
	Renderer tenk.Renderer
}

// NewServer creates and configures the HTTP server. analyses may be nil, in
// which case the analysis history routes report EUNAVAILABLE.
func NewServer(analyzer Analyzer, analyses tenk.AnalysisService, log *slog.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		analyses: analyses,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Compress(5, "application/json"))

	r.Get("/health", s.handleHealth)
	r.Get("/api/sections", s.handleListSections)
	r.Get("/api/filings/{ticker}/sections/{section}", s.handleExtract)
	r.Get("/analyze/10k/{ticker}/{section}", s.handleAnalyze)

	r.Route("/api/analyses", func(r chi.Router) {
		r.Get("/", s.handleListAnalyses)
		r.Get("/{id}", s.handleGetAnalysis)
		r.Delete("/{id}", s.handleDeleteAnalysis)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// StatusCode maps an application error code to an HTTP status code.
func StatusCode(code string) int {
	switch code {
	case tenk.EINVALID:
		return http.StatusBadRequest
	case tenk.ENOTFOUND:
		return http.StatusNotFound
	case tenk.ECONFLICT:
		return http.StatusConflict
	case tenk.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error body. Internal errors are logged and
// reported without detail.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := tenk.ErrorCode(err)
	if code == tenk.EINTERNAL {
		s.log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	jsonError(w, tenk.ErrorMessage(err), StatusCode(code))
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

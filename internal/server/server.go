// Package server exposes the layout pipeline over HTTP.
//
// The server depends on the core engine only through its two pure functions
// (layout and unlayout, via the pipeline); everything else here is transport:
// routing, request IDs, error envelopes, and metrics.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dizzikim-dev/infraflow-sub006/internal/config"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/buildinfo"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/cache"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/errors"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/observability"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/pipeline"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// Server is the HTTP API host for the layout pipeline.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *Metrics
	cfg     config.Config
}

// New creates a server around the given runner and registers its prometheus
// metrics as the global observability hooks.
func New(runner *pipeline.Runner, logger *log.Logger, cfg config.Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	m := NewMetrics()
	observability.SetHTTPHooks(m)
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)

	return &Server{
		runner:  runner,
		logger:  logger,
		metrics: m,
		cfg:     cfg,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/unlayout", s.handleUnlayout)
		r.Post("/validate", s.handleValidate)
	})

	return r
}

// ListenAndServe runs the server at the configured address until the
// listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.logger.Info("listening", "addr", s.cfg.Server.Addr, "version", buildinfo.Version)
	return srv.ListenAndServe()
}

// =============================================================================
// Middleware
// =============================================================================

// requestID assigns a fresh UUID to every request and echoes it back in the
// X-Request-ID header (honoring a caller-provided one).
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context(), s.logger.With("request_id", id))))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		log.FromContext(r.Context()).Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Spec    spec.Spec     `json:"spec"`
	Layout  layout.Config `json:"layout,omitempty"`
	Strict  bool          `json:"strict,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`

	// Namespace isolates this caller's cache entries from everyone else's.
	// Callers sharing a namespace share cached layouts.
	Namespace string `json:"namespace,omitempty"`
}

// LayoutResponse is the body of a successful POST /v1/layout.
type LayoutResponse struct {
	Diagram  layout.Diagram     `json:"diagram"`
	SpecHash string             `json:"specHash"`
	Cache    pipeline.CacheInfo `json:"cache"`
}

// runnerFor returns the shared runner, or a namespace-scoped view of it when
// the caller asked for cache isolation. The scoped runner shares the backend
// and logger; only key derivation changes.
func (s *Server) runnerFor(namespace string) *pipeline.Runner {
	if namespace == "" {
		return s.runner
	}
	return &pipeline.Runner{
		Cache:  s.runner.Cache,
		Keyer:  cache.NewScopedKeyer(s.runner.Keyer, namespace+":"),
		Logger: s.runner.Logger,
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	result, err := s.runnerFor(req.Namespace).Execute(r.Context(), pipeline.Options{
		Spec:    &req.Spec,
		Layout:  req.Layout,
		Strict:  req.Strict,
		Refresh: req.Refresh,
		Logger:  log.FromContext(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, LayoutResponse{
		Diagram:  result.Diagram,
		SpecHash: result.SpecHash,
		Cache:    result.CacheInfo,
	})
}

// UnlayoutRequest is the body of POST /v1/unlayout.
type UnlayoutRequest struct {
	Diagram layout.Diagram `json:"diagram"`
}

func (s *Server) handleUnlayout(w http.ResponseWriter, r *http.Request) {
	var req UnlayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]spec.Spec{"spec": req.Diagram.Spec()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var sp spec.Spec
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	if err := sp.Validate(); err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"valid": false,
			"error": errors.UserMessage(err),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorEnvelope is the JSON error body: {"error": {"code": ..., "message": ...}}
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSpec,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	case "":
		code = errors.ErrCodeInternal
	}

	log.FromContext(r.Context()).Error("request failed", "code", code, "err", err)
	s.writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

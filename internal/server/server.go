// Package server exposes the chart pipeline over HTTP.
//
// The API is JSON-first: POST a computation request, get the assembled
// chart back. An optional archive (backed by the store package) adds
// persistence endpoints. Rendered dasha trees are served as SVG.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grahalabs/jataka/pkg/buildinfo"
	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/store"
)

// Server wires the pipeline runner and chart archive into an HTTP handler.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// New creates a server. The store may be nil, in which case the archive
// endpoints respond with 404.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: st, Logger: logger}
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chart", s.handleCompute)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleSave)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
			r.Get("/{id}/dasha.svg", s.handleDashaSVG)
		})
	})

	return r
}

// logRequests is a lightweight structured request logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the JSON
// error body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDate, errors.ErrCodeInvalidTime,
		errors.ErrCodeInvalidCoordinates, errors.ErrCodeInvalidHouseSystem,
		errors.ErrCodeInvalidAyanamsa, errors.ErrCodeInvalidDepth,
		errors.ErrCodeInvalidHarmonic, errors.ErrCodeInvalidProfile:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeEphemeris:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

// requireStore guards the archive endpoints when no store is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: "chart archive not configured",
			Code:  string(errors.ErrCodeUnsupported),
		})
		return false
	}
	return true
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

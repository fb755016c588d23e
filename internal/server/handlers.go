package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/render"
	"github.com/grahalabs/jataka/pkg/store"
)

// computeRequest is the body of POST /api/v1/chart and /api/v1/charts.
type computeRequest struct {
	pipeline.Options
	// Name labels the archived record (save endpoint only).
	Name string `json:"name,omitempty"`
}

// handleCompute computes a chart without persisting it.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	result, err := s.Runner.Execute(r.Context(), req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSave computes a chart and archives it.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	result, err := s.Runner.Execute(r.Context(), req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.Store.Save(r.Context(), store.Record{
		Name:    req.Name,
		Request: req.Options,
		Result:  result,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleList returns archived charts, newest first. The limit query
// parameter caps the count (default 50).
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	recs, err := s.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDashaSVG renders an archived chart's dasha tree as SVG.
func (s *Server) handleDashaSVG(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if len(rec.Result.Dasha.Periods) == 0 {
		writeError(w, errors.New(errors.ErrCodeNotFound, "chart %q has no dasha tree", rec.ID))
		return
	}

	dot := render.ToDOT(rec.Result.Dasha, render.Options{
		Detailed: r.URL.Query().Get("detailed") == "true",
		ActiveJD: rec.Result.JulianDay,
	})
	svg, err := render.RenderSVG(dot)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render dasha tree"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

package web

import (
	"net/http"

	"github.com/datainspect/inspector/internal/profile"
	"github.com/datainspect/inspector/internal/store"
	"github.com/go-chi/chi/v5"
)

// profiler resolves the dataset from the URL and binds a fresh profiler to
// it. Every profiling endpoint goes through here, so each request re-reads
// the stored file.
func (s *Server) profiler(r *http.Request) (*profile.Profiler, error) {
	id := chi.URLParam(r, "datasetID")
	if id == "" {
		return nil, &store.NotFoundError{ID: id}
	}

	handle, err := s.store.Resolve(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return profile.NewProfiler(handle), nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.Summary(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleMissing(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.Missing(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDtypes(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.Dtypes(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleNunique(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.Nunique(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleOutliers(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.Outliers(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.Duplicates(r.Context(), s.cfg.Profile.DuplicateSampleSize)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiler(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rep, err := p.ColumnNames(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

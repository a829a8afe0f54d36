package web

import (
	"net/http"

	"github.com/datainspect/inspector/internal/logging"
	"github.com/datainspect/inspector/internal/store"
)

// handleDashboard serves the single-page dashboard client.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListDatasets returns all stored datasets.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if datasets == nil {
		datasets = []store.Dataset{}
	}

	writeJSON(w, http.StatusOK, map[string][]store.Dataset{"datasets": datasets})
}

// handleUpload accepts a multipart CSV upload and stores it under a fresh
// opaque identifier. The file is streamed to storage, never buffered whole.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form", "UPL001")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided", "UPL002")
		return
	}
	defer file.Close()

	dataset, err := s.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("dataset uploaded",
		"dataset_id", dataset.ID,
		"file_name", dataset.FileName,
		"size_bytes", dataset.SizeBytes,
	)

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        dataset.ID,
		"file_name": dataset.FileName,
	})
}

// Package server exposes the invoice store and export pipeline over HTTP.
// The handlers are deliberately thin: decode, delegate, encode. Update
// conflict handling and retries stay with the clients.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/flanksource/commons/logger"
	"github.com/go-chi/chi/v5"

	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/formatters"
	"github.com/faturalab/fatura/store"
)

// Server wires the repository and export pipeline into an HTTP surface.
type Server struct {
	repo    store.Repository
	exports *formatters.Manager
}

// New creates a server on top of the given repository.
func New(repo store.Repository) *Server {
	return &Server{
		repo:    repo,
		exports: formatters.NewManager(),
	}
}

// Router builds the chi router for all invoice endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/api/invoices", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Post("/export", s.handleExport)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Delete("/", s.handleDelete)
			r.Post("/duplicate", s.handleDuplicate)
			r.Get("/pdf", s.handlePDF)
		})
	})

	return r
}

// Listen serves the router on the given address.
func (s *Server) Listen(addr string) error {
	logger.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var inv api.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice payload")
		return
	}
	if !s.normalizeStatus(w, &inv) {
		return
	}

	if err := s.repo.Create(r.Context(), &inv); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create invoice")
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}
	if invoices == nil {
		invoices = []*api.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	inv, err := s.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var inv api.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice payload")
		return
	}
	if !s.normalizeStatus(w, &inv) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.repo.Replace(r.Context(), id, &inv); err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	dup, err := s.repo.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dup)
}

// exportRequest mirrors the client payload: the invoice travels with the
// request so drafts can be exported before they are ever persisted.
type exportRequest struct {
	Format string      `json:"format"`
	Data   api.Invoice `json:"data"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid export request")
		return
	}

	payload, err := s.exports.Export(req.Data, req.Format)
	if err != nil {
		if errors.Is(err, formatters.ErrUnsupportedFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Errorf("export failed: %v", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeAttachment(w, payload)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	inv, err := s.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}

	payload, err := s.exports.ExportPDF(*inv)
	if err != nil {
		logger.Errorf("pdf render failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}
	writeAttachment(w, payload)
}

// normalizeStatus defaults an absent status to pending and rejects values
// outside the closed set. Reports whether the request may proceed.
func (s *Server) normalizeStatus(w http.ResponseWriter, inv *api.Invoice) bool {
	if inv.Summary.Status == "" {
		inv.Summary.Status = api.StatusPending
		return true
	}
	if !inv.Summary.Status.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", inv.Summary.Status))
		return false
	}
	return true
}

func (s *Server) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "storage error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeAttachment(w http.ResponseWriter, payload formatters.Payload) {
	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	if _, err := w.Write(payload.Data); err != nil {
		logger.Errorf("failed to write payload: %v", err)
	}
}

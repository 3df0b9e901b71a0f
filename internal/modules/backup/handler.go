package backup

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Handler exposes backup HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/backup", func(r chi.Router) {
		r.Get("/export", h.export)   // GET  /api/v1/backup/export
		r.Post("/import", h.importB) // POST /api/v1/backup/import
	})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Export(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="cuppa-backup.json"`)
	respond(w, http.StatusOK, b)
}

func (h *Handler) importB(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.Import(r.Context(), data)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func respondErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, apperr.ErrImportFormat) {
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Handler exposes reporting HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/summary", h.summary)        // GET /api/v1/reports/summary?range=week
		r.Get("/daily", h.daily)            // GET /api/v1/reports/daily?range=month
		r.Get("/top-items", h.topItems)     // GET /api/v1/reports/top-items?range=week
		r.Get("/categories", h.categories)  // GET /api/v1/reports/categories?range=week
		r.Get("/hourly", h.hourly)          // GET /api/v1/reports/hourly?range=today
		r.Get("/export.csv", h.exportCSV)   // GET /api/v1/reports/export.csv?range=custom&start=...&end=...
	})
}

func query(r *http.Request) Query {
	qs := r.URL.Query()
	return Query{
		Range:    qs.Get("range"),
		Start:    qs.Get("start"),
		End:      qs.Get("end"),
		Category: qs.Get("category"),
		Customer: qs.Get("customer"),
		Search:   qs.Get("q"),
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Summary(r.Context(), query(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.Daily(r.Context(), query(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, series)
}

func (h *Handler) topItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.TopItems(r.Context(), query(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context(), query(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, cats)
}

func (h *Handler) hourly(w http.ResponseWriter, r *http.Request) {
	hours, err := h.service.Hourly(r.Context(), query(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, hours)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportCSV(r.Context(), query(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	filename := fmt.Sprintf("sales-report-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func respondErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, apperr.ErrValidation) {
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

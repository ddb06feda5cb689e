package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
)

type Handler struct {
	svc *sale.Service
}

func NewHandler(svc *sale.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createSaleRequest struct {
	Ref          string    `json:"ref"`
	Model        string    `json:"model"`
	Net          int64     `json:"net"`
	Installment1 int64     `json:"installment1"`
	Installment2 int64     `json:"installment2"`
	SaleAmount   *int64    `json:"sale_amount,omitempty"`
	Cost         *int64    `json:"cost,omitempty"`
	ClientID     uuid.UUID `json:"client_id"`
	CategoryID   string    `json:"category_id"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes,omitempty"`
}

func (r createSaleRequest) validate() string {
	switch {
	case r.Ref == "":
		return "ref is required"
	case r.Model == "":
		return "model is required"
	case r.Net < 0 || r.Installment1 < 0 || r.Installment2 < 0:
		return "amounts must be non-negative"
	case r.ClientID == uuid.Nil:
		return "client_id is required"
	case r.CategoryID == "":
		return "category_id is required"
	}

	return ""
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	sl, err := h.svc.Create(r.Context(), sale.CreateParams{
		Ref:          req.Ref,
		Model:        req.Model,
		Net:          req.Net,
		Installment1: req.Installment1,
		Installment2: req.Installment2,
		SaleAmount:   req.SaleAmount,
		Cost:         req.Cost,
		ClientID:     req.ClientID,
		CategoryID:   req.CategoryID,
		Date:         req.Date,
		Notes:        req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := sale.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(pricing.Status(s))
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ClientID = new(id)
		}
	}

	if s := r.URL.Query().Get("category_id"); s != "" {
		filter.CategoryID = new(s)
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	sales, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(sales)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter := sale.ListFilter{}

	if s := r.URL.Query().Get("category_id"); s != "" {
		filter.CategoryID = new(s)
	}

	summary, err := h.svc.Summarize(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sl, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSaleRequest struct {
	Ref          *string    `json:"ref,omitempty"`
	Model        *string    `json:"model,omitempty"`
	Net          *int64     `json:"net,omitempty"`
	Installment1 *int64     `json:"installment1,omitempty"`
	Installment2 *int64     `json:"installment2,omitempty"`
	SaleAmount   *int64     `json:"sale_amount,omitempty"`
	Cost         *int64     `json:"cost,omitempty"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	CategoryID   *string    `json:"category_id,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sl, err := h.svc.Update(r.Context(), id, sale.UpdateParams{
		Ref:          req.Ref,
		Model:        req.Model,
		Net:          req.Net,
		Installment1: req.Installment1,
		Installment2: req.Installment2,
		SaleAmount:   req.SaleAmount,
		Cost:         req.Cost,
		ClientID:     req.ClientID,
		CategoryID:   req.CategoryID,
		Date:         req.Date,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package catalog

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/catalog"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Get("/{id}", h.getCategory)
}

func (h *Handler) ModelRoutes(r chi.Router) {
	r.Post("/", h.createModel)
	r.Get("/", h.listModels)
	r.Get("/{id}", h.getModel)
	r.Patch("/{id}", h.updateModel)
	r.Delete("/{id}", h.deleteModel)
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
}

func toCategoryResponse(c *catalog.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Color: c.Color}
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toCategoryResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Category(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toCategoryResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type modelResponse struct {
	ID             uuid.UUID  `json:"id"`
	Ref            string     `json:"ref"`
	Name           string     `json:"name"`
	BaseCost       int64      `json:"base_cost"`
	SuggestedPrice int64      `json:"suggested_price"`
	CategoryID     string     `json:"category_id"`
	Image          string     `json:"image,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func toModelResponse(m *catalog.Model) modelResponse {
	resp := modelResponse{
		ID:             m.ID,
		Ref:            m.Ref,
		Name:           m.Name,
		BaseCost:       m.BaseCost,
		SuggestedPrice: m.SuggestedPrice,
		CategoryID:     m.CategoryID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if len(m.Image) > 0 {
		resp.Image = base64.StdEncoding.EncodeToString(m.Image)
	}

	return resp
}

type modelRequest struct {
	Ref            string `json:"ref"`
	Name           string `json:"name"`
	BaseCost       int64  `json:"base_cost"`
	SuggestedPrice int64  `json:"suggested_price"`
	CategoryID     string `json:"category_id"`
	Image          string `json:"image,omitempty"`
}

func (r modelRequest) params() (catalog.ModelParams, error) {
	params := catalog.ModelParams{
		Ref:            r.Ref,
		Name:           r.Name,
		BaseCost:       r.BaseCost,
		SuggestedPrice: r.SuggestedPrice,
		CategoryID:     r.CategoryID,
	}

	if r.Image != "" {
		img, err := base64.StdEncoding.DecodeString(r.Image)
		if err != nil {
			return catalog.ModelParams{}, err
		}

		params.Image = img
	}

	return params, nil
}

func (h *Handler) createModel(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Ref == "" || req.Name == "" || req.CategoryID == "" {
		http.Error(w, "ref, name and category_id are required", http.StatusBadRequest)
		return
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, "invalid image encoding", http.StatusBadRequest)
		return
	}

	m, err := h.svc.CreateModel(r.Context(), params)
	if err != nil {
		if errors.Is(err, catalog.ErrPriceBelowCost) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toModelResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.Models(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]modelResponse, len(models))
	for i, m := range models {
		resp[i] = toModelResponse(m)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getModel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Model(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "model not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toModelResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) updateModel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req modelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, "invalid image encoding", http.StatusBadRequest)
		return
	}

	m, err := h.svc.UpdateModel(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			http.Error(w, "model not found", http.StatusNotFound)
		case errors.Is(err, catalog.ErrPriceBelowCost):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toModelResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteModel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteModel(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package importcsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/importer"
	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
)

const defaultCategoryID = "other"

type Handler struct {
	importSvc *importer.Service
	saleSvc   *sale.Service
	clientSvc *client.Service
}

func NewHandler(importSvc *importer.Service, saleSvc *sale.Service, clientSvc *client.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		saleSvc:   saleSvc,
		clientSvc: clientSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type saleResponse struct {
	ID         uuid.UUID      `json:"id"`
	Ref        string         `json:"ref"`
	Model      string         `json:"model"`
	Net        int64          `json:"net"`
	Total      int64          `json:"total"`
	Debt       int64          `json:"debt"`
	Status     pricing.Status `json:"status"`
	ClientID   uuid.UUID      `json:"client_id"`
	CategoryID string         `json:"category_id"`
	Date       time.Time      `json:"date"`
}

type importSuccessResponse struct {
	Imported int            `json:"imported"`
	Sales    []saleResponse `json:"sales"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatLedger
	}

	categoryID := r.FormValue("category_id")
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, row := range rows {
		if strings.TrimSpace(row.ClientName) == "" {
			http.Error(w, fmt.Sprintf("row %q has no client name", row.Ref), http.StatusBadRequest)
			return
		}
	}

	clientIDs, err := h.resolveClients(r, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sales := make([]*sale.Sale, 0, len(rows))

	for _, row := range rows {
		date := row.Date
		if date.IsZero() {
			date = time.Now().UTC()
		}

		sl, err := h.saleSvc.Create(r.Context(), sale.CreateParams{
			Ref:          row.Ref,
			Model:        row.Model,
			Net:          row.Net,
			Installment1: row.Installment1,
			Installment2: row.Installment2,
			Cost:         row.Cost,
			ClientID:     clientIDs[clientKey(row.ClientName)],
			CategoryID:   categoryID,
			Date:         date,
			Notes:        row.Notes,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("row %q: %s", row.Ref, err), http.StatusInternalServerError)
			return
		}

		sales = append(sales, sl)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(sales)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// resolveClients maps every client name in the rows to an id, creating
// clients that do not exist yet. Matching is case-insensitive.
func (h *Handler) resolveClients(r *http.Request, rows []importer.Row) (map[string]uuid.UUID, error) {
	existing, err := h.clientSvc.List(r.Context())
	if err != nil {
		return nil, err
	}

	ids := make(map[string]uuid.UUID, len(existing))
	for _, c := range existing {
		ids[clientKey(c.Name)] = c.ID
	}

	for _, row := range rows {
		key := clientKey(row.ClientName)
		if _, ok := ids[key]; ok {
			continue
		}

		c, err := h.clientSvc.Create(r.Context(), client.CreateParams{
			Name: strings.TrimSpace(row.ClientName),
		})
		if err != nil {
			return nil, fmt.Errorf("create client %q: %w", row.ClientName, err)
		}

		ids[key] = c.ID
	}

	return ids, nil
}

func clientKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func toSuccessResponse(sales []*sale.Sale) importSuccessResponse {
	responses := make([]saleResponse, 0, len(sales))
	for _, sl := range sales {
		responses = append(responses, saleResponse{
			ID:         sl.ID,
			Ref:        sl.Ref,
			Model:      sl.Model,
			Net:        sl.Net,
			Total:      sl.Total,
			Debt:       sl.Debt,
			Status:     sl.Status,
			ClientID:   sl.ClientID,
			CategoryID: sl.CategoryID,
			Date:       sl.Date,
		})
	}

	return importSuccessResponse{
		Imported: len(sales),
		Sales:    responses,
	}
}

package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
)

type saleResponse struct {
	ID           uuid.UUID      `json:"id"`
	Ref          string         `json:"ref"`
	Model        string         `json:"model"`
	Net          int64          `json:"net"`
	Tax          int64          `json:"tax"`
	Total        int64          `json:"total"`
	Installment1 int64          `json:"installment1"`
	Installment2 int64          `json:"installment2"`
	Debt         int64          `json:"debt"`
	SaleAmount   int64          `json:"sale_amount"`
	Cost         *int64         `json:"cost,omitempty"`
	Profit       int64          `json:"profit"`
	Status       pricing.Status `json:"status"`
	ClientID     uuid.UUID      `json:"client_id"`
	CategoryID   string         `json:"category_id"`
	Date         time.Time      `json:"date"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

func toResponse(sl *sale.Sale) saleResponse {
	return saleResponse{
		ID:           sl.ID,
		Ref:          sl.Ref,
		Model:        sl.Model,
		Net:          sl.Net,
		Tax:          sl.Tax,
		Total:        sl.Total,
		Installment1: sl.Installment1,
		Installment2: sl.Installment2,
		Debt:         sl.Debt,
		SaleAmount:   sl.SaleAmount,
		Cost:         sl.Cost,
		Profit:       sl.Profit,
		Status:       sl.Status,
		ClientID:     sl.ClientID,
		CategoryID:   sl.CategoryID,
		Date:         sl.Date,
		Notes:        sl.Notes,
		CreatedAt:    sl.CreatedAt,
		UpdatedAt:    sl.UpdatedAt,
	}
}

func toResponseList(sales []*sale.Sale) []saleResponse {
	resp := make([]saleResponse, len(sales))
	for i, sl := range sales {
		resp[i] = toResponse(sl)
	}

	return resp
}

type summaryResponse struct {
	Count       int                    `json:"count"`
	TotalSold   int64                  `json:"total_sold"`
	TotalProfit int64                  `json:"total_profit"`
	TotalDebt   int64                  `json:"total_debt"`
	ByStatus    map[pricing.Status]int `json:"by_status"`
	TopClients  []clientTotalResponse  `json:"top_clients"`
}

type clientTotalResponse struct {
	ClientID uuid.UUID `json:"client_id"`
	Total    int64     `json:"total"`
}

func toSummaryResponse(s *sale.Summary) summaryResponse {
	resp := summaryResponse{
		Count:       s.Count,
		TotalSold:   s.TotalSold,
		TotalProfit: s.TotalProfit,
		TotalDebt:   s.TotalDebt,
		ByStatus:    s.CountByStatus,
		TopClients:  make([]clientTotalResponse, 0, len(s.TopClients)),
	}

	for _, ct := range s.TopClients {
		resp.TopClients = append(resp.TopClients, clientTotalResponse{ClientID: ct.ClientID, Total: ct.Total})
	}

	return resp
}

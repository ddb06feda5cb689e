package sale

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/pricing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	CreateSale(ctx context.Context, s *Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	ListSales(ctx context.Context, filter ListFilter) ([]*Sale, error)
	UpdateSale(ctx context.Context, s *Sale) error
	DeleteSale(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Ref          string
	Model        string
	Net          int64
	Installment1 int64
	Installment2 int64
	SaleAmount   *int64
	Cost         *int64
	ClientID     uuid.UUID
	CategoryID   string
	Date         time.Time
	Notes        string
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Ref          *string
	Model        *string
	Net          *int64
	Installment1 *int64
	Installment2 *int64
	SaleAmount   *int64
	Cost         *int64
	ClientID     *uuid.UUID
	CategoryID   *string
	Date         *time.Time
	Notes        *string
}

type ListFilter struct {
	Status     *pricing.Status
	ClientID   *uuid.UUID
	CategoryID *string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Sale, error) {
	sl := &Sale{
		Ref:                params.Ref,
		Model:              params.Model,
		Net:                params.Net,
		Installment1:       params.Installment1,
		Installment2:       params.Installment2,
		SaleAmountOverride: params.SaleAmount,
		Cost:               params.Cost,
		ClientID:           params.ClientID,
		CategoryID:         params.CategoryID,
		Date:               params.Date,
		Notes:              params.Notes,
	}
	if err := s.repo.CreateSale(ctx, sl); err != nil {
		return nil, err
	}

	return sl, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	return s.repo.ListSales(ctx, filter)
}

// Update merges the partial params into the stored sale. The repository
// recomputes every derived field on write, so a net change can never leave
// stale tax, total, debt or status behind.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Sale, error) {
	sl, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Ref != nil {
		sl.Ref = *params.Ref
	}

	if params.Model != nil {
		sl.Model = *params.Model
	}

	if params.Net != nil {
		sl.Net = *params.Net
	}

	if params.Installment1 != nil {
		sl.Installment1 = *params.Installment1
	}

	if params.Installment2 != nil {
		sl.Installment2 = *params.Installment2
	}

	if params.SaleAmount != nil {
		sl.SaleAmountOverride = params.SaleAmount
	}

	if params.Cost != nil {
		sl.Cost = params.Cost
	}

	if params.ClientID != nil {
		sl.ClientID = *params.ClientID
	}

	if params.CategoryID != nil {
		sl.CategoryID = *params.CategoryID
	}

	if params.Date != nil {
		sl.Date = *params.Date
	}

	if params.Notes != nil {
		sl.Notes = *params.Notes
	}

	if err := s.repo.UpdateSale(ctx, sl); err != nil {
		return nil, err
	}

	return sl, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSale(ctx, id)
}

// Summary aggregates the figures the dashboard shows.
type Summary struct {
	Count         int
	TotalSold     int64
	TotalProfit   int64
	TotalDebt     int64
	CountByStatus map[pricing.Status]int
	TopClients    []ClientTotal
}

// ClientTotal is the accumulated sale amount of one client.
type ClientTotal struct {
	ClientID uuid.UUID
	Total    int64
}

const topClientsLimit = 5

func (s *Service) Summarize(ctx context.Context, filter ListFilter) (*Summary, error) {
	sales, err := s.repo.ListSales(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Count: len(sales),
		CountByStatus: map[pricing.Status]int{
			pricing.StatusPaid:    0,
			pricing.StatusPartial: 0,
			pricing.StatusUnpaid:  0,
		},
	}

	byClient := make(map[uuid.UUID]int64)

	for _, sl := range sales {
		summary.TotalSold += sl.SaleAmount
		summary.TotalProfit += sl.Profit
		summary.TotalDebt += sl.Debt
		summary.CountByStatus[sl.Status]++
		byClient[sl.ClientID] += sl.SaleAmount
	}

	totals := make([]ClientTotal, 0, len(byClient))
	for id, total := range byClient {
		totals = append(totals, ClientTotal{ClientID: id, Total: total})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}

		return totals[i].ClientID.String() < totals[j].ClientID.String()
	})

	if len(totals) > topClientsLimit {
		totals = totals[:topClientsLimit]
	}

	summary.TopClients = totals

	return summary, nil
}

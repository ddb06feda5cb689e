package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/sale"
)

// CreateSale assigns a fresh id and stores the record. Derived fields are
// recomputed here regardless of what the caller supplied.
func (s *Store) CreateSale(ctx context.Context, sl *sale.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl.ID = uuid.New()
	sl.CreatedAt = time.Now().UTC()
	sl.UpdatedAt = nil
	recalculate(sl)

	s.sales[sl.ID] = copySale(sl)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

func (s *Store) GetSale(_ context.Context, id uuid.UUID) (*sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.sales[id]
	if !ok {
		return nil, sale.ErrNotFound
	}

	return copySale(sl), nil
}

func (s *Store) ListSales(_ context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*sale.Sale

	for _, sl := range s.sales {
		if filter.Status != nil && sl.Status != *filter.Status {
			continue
		}

		if filter.ClientID != nil && sl.ClientID != *filter.ClientID {
			continue
		}

		if filter.CategoryID != nil && sl.CategoryID != *filter.CategoryID {
			continue
		}

		if filter.StartDate != nil && sl.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && sl.Date.After(*filter.EndDate) {
			continue
		}

		out = append(out, copySale(sl))
	}

	sortSales(out)

	return out, nil
}

// UpdateSale replaces the stored record. Derived fields are recomputed
// from the record's inputs, so stale tax/total/debt/status can never land.
func (s *Store) UpdateSale(ctx context.Context, sl *sale.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sales[sl.ID]
	if !ok {
		return sale.ErrNotFound
	}

	now := time.Now().UTC()
	sl.CreatedAt = existing.CreatedAt
	sl.UpdatedAt = &now
	recalculate(sl)

	s.sales[sl.ID] = copySale(sl)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

// DeleteSale removes the record; a missing id is a no-op.
func (s *Store) DeleteSale(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sales[id]; !ok {
		return nil
	}

	delete(s.sales, id)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

func copySale(sl *sale.Sale) *sale.Sale {
	cp := *sl
	cp.SaleAmountOverride = int64Ptr(sl.SaleAmountOverride)
	cp.Cost = int64Ptr(sl.Cost)
	cp.UpdatedAt = timePtr(sl.UpdatedAt)

	return &cp
}

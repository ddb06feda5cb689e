// Package store is the single source of truth for the working set. It
// implements the sale, client and catalog repositories over in-memory
// maps, recomputes derived sale fields on every write, and writes the
// whole state through to a snapshot slot after each mutation.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
	"github.com/darcyvale/vitrine/internal/snapshot"
)

// Store owns all entity collections. One mutex serializes every writer;
// the HTTP server and the TUI both mutate through here, so the lock is
// load-bearing, not defensive.
type Store struct {
	mu sync.Mutex

	sales      map[uuid.UUID]*sale.Sale
	clients    map[uuid.UUID]*client.Client
	categories map[string]*catalog.Category
	models     map[uuid.UUID]*catalog.Model

	snap snapshot.Store
	subs []chan struct{}
}

// New loads the snapshot and builds the working set. An empty snapshot
// seeds the fixed category set.
func New(ctx context.Context, snap snapshot.Store) (*Store, error) {
	loaded, err := snap.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	s := &Store{
		sales:      make(map[uuid.UUID]*sale.Sale, len(loaded.Sales)),
		clients:    make(map[uuid.UUID]*client.Client, len(loaded.Clients)),
		categories: make(map[string]*catalog.Category, len(loaded.Categories)),
		models:     make(map[uuid.UUID]*catalog.Model, len(loaded.Models)),
		snap:       snap,
	}

	for _, sl := range loaded.Sales {
		s.sales[sl.ID] = sl
	}

	for _, c := range loaded.Clients {
		s.clients[c.ID] = c
	}

	for _, cat := range loaded.Categories {
		s.categories[cat.ID] = cat
	}

	for _, m := range loaded.Models {
		s.models[m.ID] = m
	}

	if loaded.Empty() {
		for _, cat := range catalog.SeedCategories() {
			s.categories[cat.ID] = cat
		}

		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Subscribe returns a channel that receives a signal after every
// mutation. The signal is coalesced; slow consumers miss intermediate
// notifications, never mutations.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)

	return ch
}

func (s *Store) notify() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// persist writes the current state to the snapshot slot. Called with the
// mutex held.
func (s *Store) persist(ctx context.Context) error {
	snap := &snapshot.Snapshot{
		Sales:      make([]*sale.Sale, 0, len(s.sales)),
		Clients:    make([]*client.Client, 0, len(s.clients)),
		Categories: make([]*catalog.Category, 0, len(s.categories)),
		Models:     make([]*catalog.Model, 0, len(s.models)),
	}

	for _, sl := range s.sales {
		snap.Sales = append(snap.Sales, sl)
	}

	for _, c := range s.clients {
		snap.Clients = append(snap.Clients, c)
	}

	for _, cat := range s.categories {
		snap.Categories = append(snap.Categories, cat)
	}

	for _, m := range s.models {
		snap.Models = append(snap.Models, m)
	}

	sortSales(snap.Sales)
	sort.Slice(snap.Clients, func(i, j int) bool { return snap.Clients[i].ID.String() < snap.Clients[j].ID.String() })
	sort.Slice(snap.Categories, func(i, j int) bool { return snap.Categories[i].Name < snap.Categories[j].Name })
	sort.Slice(snap.Models, func(i, j int) bool { return snap.Models[i].Ref < snap.Models[j].Ref })

	if err := s.snap.Save(ctx, snap); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}

	return nil
}

// recalculate replaces every derived field of the sale from its inputs.
// All five derived fields are produced together; a partial update here
// would break the core invariant.
func recalculate(sl *sale.Sale) {
	b := pricing.Calculate(pricing.Input{
		Net:          sl.Net,
		Installment1: sl.Installment1,
		Installment2: sl.Installment2,
		SaleAmount:   sl.SaleAmountOverride,
		Cost:         sl.Cost,
	})

	sl.Tax = b.Tax
	sl.Total = b.Total
	sl.Debt = b.Debt
	sl.SaleAmount = b.SaleAmount
	sl.Profit = b.Profit
	sl.Status = b.Status
}

func sortSales(sales []*sale.Sale) {
	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].Date.Equal(sales[j].Date) {
			return sales[i].Date.Before(sales[j].Date)
		}

		if !sales[i].CreatedAt.Equal(sales[j].CreatedAt) {
			return sales[i].CreatedAt.Before(sales[j].CreatedAt)
		}

		return sales[i].ID.String() < sales[j].ID.String()
	})
}

func int64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

func timePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

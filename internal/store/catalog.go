package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/catalog"
)

func (s *Store) ListCategories(_ context.Context) ([]*catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*catalog.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		cp := *cat
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.categories[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}

	cp := *cat

	return &cp, nil
}

func (s *Store) CreateModel(ctx context.Context, m *catalog.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = nil

	s.models[m.ID] = copyModel(m)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

func (s *Store) GetModel(_ context.Context, id uuid.UUID) (*catalog.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}

	return copyModel(m), nil
}

func (s *Store) ListModels(_ context.Context) ([]*catalog.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*catalog.Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, copyModel(m))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Ref != out[j].Ref {
			return out[i].Ref < out[j].Ref
		}

		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}

func (s *Store) UpdateModel(ctx context.Context, m *catalog.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.models[m.ID]
	if !ok {
		return catalog.ErrNotFound
	}

	now := time.Now().UTC()
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = &now

	s.models[m.ID] = copyModel(m)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

// DeleteModel removes the record; a missing id is a no-op.
func (s *Store) DeleteModel(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[id]; !ok {
		return nil
	}

	delete(s.models, id)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

func copyModel(m *catalog.Model) *catalog.Model {
	cp := *m
	cp.UpdatedAt = timePtr(m.UpdatedAt)

	if m.Image != nil {
		cp.Image = make([]byte, len(m.Image))
		copy(cp.Image, m.Image)
	}

	return &cp
}

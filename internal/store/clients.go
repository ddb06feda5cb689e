package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/client"
)

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = nil

	s.clients[c.ID] = copyClient(c)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

func (s *Store) GetClient(_ context.Context, id uuid.UUID) (*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}

	return copyClient(c), nil
}

func (s *Store) ListClients(_ context.Context) ([]*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*client.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, copyClient(c))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clients[c.ID]
	if !ok {
		return client.ErrNotFound
	}

	now := time.Now().UTC()
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = &now

	s.clients[c.ID] = copyClient(c)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

// DeleteClient removes the record unless a sale still references it. The
// guard lives here rather than in the callers so the invariant holds no
// matter who asks.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return nil
	}

	for _, sl := range s.sales {
		if sl.ClientID == id {
			return client.ErrHasSales
		}
	}

	delete(s.clients, id)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.notify()

	return nil
}

func copyClient(c *client.Client) *client.Client {
	cp := *c
	cp.UpdatedAt = timePtr(c.UpdatedAt)

	return &cp
}

package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore keeps the snapshot in a single row of a key-value table:
//
//	CREATE TABLE snapshots (
//	    slot       TEXT PRIMARY KEY,
//	    data       JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	db   *sql.DB
	slot string
}

const DefaultSlot = "vitrine"

func NewPostgresStore(db *sql.DB, slot string) *PostgresStore {
	if slot == "" {
		slot = DefaultSlot
	}

	return &PostgresStore{db: db, slot: slot}
}

func (p *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	query := `SELECT data FROM snapshots WHERE slot = $1`

	var data []byte

	err := p.db.QueryRowContext(ctx, query, p.slot).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return &Snapshot{}, nil
		}

		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return &snap, nil
}

func (p *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (slot, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := p.db.ExecContext(ctx, query, p.slot, data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}

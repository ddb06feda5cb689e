package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a client id does not exist.
	ErrNotFound = errors.New("client not found")

	// ErrHasSales is returned when deleting a client that is still
	// referenced by at least one sale. Callers should surface it as a
	// distinct condition, not a generic failure.
	ErrHasSales = errors.New("client has sales")
)

// Client is a buyer of the shop. Only the name is required.
type Client struct {
	ID       uuid.UUID
	Name     string
	Phone    string
	Document string
	Email    string
	Address  string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/pricing"
)

// ErrNotFound is returned when a sale id does not exist.
var ErrNotFound = errors.New("sale not found")

// Sale represents a single transaction of the shop. Amounts are whole pesos.
//
// Net, Installment1, Installment2, SaleAmountOverride and Cost are inputs;
// Tax, Total, Debt, SaleAmount, Profit and Status are derived by
// pricing.Calculate in the store's write path and must never be mutated
// independently.
type Sale struct {
	ID    uuid.UUID
	Ref   string
	Model string

	Net          int64
	Tax          int64
	Total        int64
	Installment1 int64
	Installment2 int64
	Debt         int64

	// SaleAmountOverride is the explicit sale amount from the form, if any.
	// SaleAmount equals Total when it is nil.
	SaleAmountOverride *int64
	SaleAmount         int64

	// Cost is the base cost when known; profit falls back to net without it.
	Cost   *int64
	Profit int64

	Status pricing.Status

	ClientID   uuid.UUID
	CategoryID string

	Date  time.Time
	Notes string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

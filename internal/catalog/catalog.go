package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a category or model id does not exist.
	ErrNotFound = errors.New("catalog entry not found")

	// ErrPriceBelowCost is returned when a model's suggested price does
	// not exceed its base cost.
	ErrPriceBelowCost = errors.New("suggested price must exceed base cost")
)

// Category groups sales and catalog models. The set is fixed and seeded
// when the store starts with an empty snapshot; the UI only references
// categories by id.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string
}

// SeedCategories returns the fixed category set.
func SeedCategories() []*Category {
	return []*Category{
		{ID: "watches", Name: "Watches", Description: "Luxury watches and accessories", Color: "#b8860b"},
		{ID: "jewelry", Name: "Jewelry", Description: "Rings, necklaces, bracelets", Color: "#9932cc"},
		{ID: "other", Name: "Other", Description: "Other products", Color: "#708090"},
	}
}

// Model is a catalog entry for a product, distinct from a sale.
type Model struct {
	ID             uuid.UUID
	Ref            string
	Name           string
	BaseCost       int64
	SuggestedPrice int64
	CategoryID     string

	// Image holds the encoded product picture, if one was uploaded.
	Image []byte

	CreatedAt time.Time
	UpdatedAt *time.Time
}

package ports

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
)

// PageStore defines the interface for persisting page records.
// Pages own live engines in memory; the store only tracks which pages exist.
type PageStore interface {
	// Save persists the record for a given page ID.
	Save(ctx context.Context, record *domain.PageRecord) error

	// Load retrieves the record for a given page ID.
	// Returns domain.ErrPageNotFound if the page does not exist.
	Load(ctx context.Context, pageID string) (*domain.PageRecord, error)

	// Delete removes the record for a given page ID.
	Delete(ctx context.Context, pageID string) error

	// List returns the IDs of all live pages.
	List(ctx context.Context) ([]string, error)
}

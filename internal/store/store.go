// Package store defines the datastore abstraction for phone-catalog-tracker.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ProductQuery defines optional filters for product listing queries.
type ProductQuery struct {
	Model     *string
	Version   *string
	Colour    *string
	Available *bool
	Source    *string
	Limit     int // default 50
	Offset    int
	OrderBy   string // "title", "model", "first_seen_at"
}

// Store defines all data access operations for phone-catalog-tracker.
type Store interface {
	// Products
	UpsertProduct(ctx context.Context, p *domain.PhoneProduct) error
	GetProduct(ctx context.Context, identityKey string) (*domain.PhoneProduct, error)
	ListProducts(ctx context.Context, opts *ProductQuery) ([]domain.PhoneProduct, int, error)
	CountProducts(ctx context.Context) (int, error)

	// Scrape runs
	InsertScrapeRun(ctx context.Context) (id string, err error)
	CompleteScrapeRun(ctx context.Context, id string, run *domain.ScrapeRun) error
	ListScrapeRuns(ctx context.Context, limit int) ([]domain.ScrapeRun, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

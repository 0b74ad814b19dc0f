package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool     *pgxpool.Pool
	poolSize int32
	log      *slog.Logger
}

// PostgresOption configures the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithPoolSize caps the connection pool. Values below 1 keep the default.
func WithPoolSize(n int) PostgresOption {
	return func(s *PostgresStore) {
		if n > 0 {
			s.poolSize = int32(n)
		}
	}
}

// WithStoreLogger sets the logger used for migration progress.
func WithStoreLogger(l *slog.Logger) PostgresOption {
	return func(s *PostgresStore) {
		s.log = l
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	s := &PostgresStore{
		poolSize: defaultPoolSize,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cfg, err := poolConfig(connString, s.poolSize)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s.pool = pool
	return s, nil
}

// poolConfig parses connString and applies the pool size cap.
func poolConfig(connString string, size int32) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if size < 1 {
		size = defaultPoolSize
	}
	cfg.MaxConns = size

	return cfg, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool, s.log)
}

// UpsertProduct inserts or updates a product by its identity key. Observed
// fields (price, availability, shipping, image) refresh on conflict; the
// identity fields never change because the key is built from them.
func (s *PostgresStore) UpsertProduct(ctx context.Context, p *domain.PhoneProduct) error {
	args := pgx.NamedArgs{
		"identity_key":      p.IdentityKey(),
		"title":             p.Title,
		"model":             p.Model,
		"version":           p.Version,
		"capacity_mb":       p.CapacityMB,
		"colour":            p.Colour,
		"image_url":         p.ImageURL,
		"price":             p.Price,
		"availability_text": p.AvailabilityText,
		"is_available":      p.IsAvailable,
		"shipping_text":     p.ShippingText,
		"shipping_date":     dateToSQL(p.ShippingDate),
		"source":            p.Source,
	}

	if _, err := s.pool.Exec(ctx, queryUpsertProduct, args); err != nil {
		return fmt.Errorf("upserting product %q: %w", p.IdentityKey(), err)
	}
	return nil
}

// GetProduct retrieves a product by its identity key.
func (s *PostgresStore) GetProduct(ctx context.Context, identityKey string) (*domain.PhoneProduct, error) {
	p := &domain.PhoneProduct{}
	err := scanProduct(s.pool.QueryRow(ctx, queryGetProduct, identityKey), p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", identityKey, err)
	}
	return p, nil
}

// ListProducts queries products with optional filters, returning results
// and total count.
func (s *PostgresStore) ListProducts(
	ctx context.Context,
	opts *ProductQuery,
) ([]domain.PhoneProduct, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.PhoneProduct
	for rows.Next() {
		var p domain.PhoneProduct
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}

// CountProducts returns the total number of stored products.
func (s *PostgresStore) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, countProductsSelect).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

// InsertScrapeRun records the start of a crawl and returns its ID.
func (s *PostgresStore) InsertScrapeRun(ctx context.Context) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertScrapeRun).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting scrape run: %w", err)
	}
	return id, nil
}

// CompleteScrapeRun records the outcome of a crawl.
func (s *PostgresStore) CompleteScrapeRun(ctx context.Context, id string, run *domain.ScrapeRun) error {
	tag, err := s.pool.Exec(ctx, queryCompleteScrapeRun,
		id, run.Status, run.PagesUsed, run.ProductsFound, run.ProductsStored, run.ErrorText,
	)
	if err != nil {
		return fmt.Errorf("completing scrape run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListScrapeRuns returns the most recent crawls, newest first.
func (s *PostgresStore) ListScrapeRuns(ctx context.Context, limit int) ([]domain.ScrapeRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListScrapeRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scrape runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ScrapeRun
	for rows.Next() {
		var r domain.ScrapeRun
		if err := rows.Scan(
			&r.ID, &r.Status, &r.PagesUsed, &r.ProductsFound, &r.ProductsStored,
			&r.ErrorText, &r.StartedAt, &r.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning scrape run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scrape runs: %w", err)
	}

	return runs, nil
}

// scannable abstracts pgx.Row / pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

func scanProduct(row scannable, p *domain.PhoneProduct) error {
	var identityKey string
	var shippingDate *time.Time

	if err := row.Scan(
		&identityKey, &p.Title, &p.Model, &p.Version, &p.CapacityMB,
		&p.Colour, &p.ImageURL, &p.Price,
		&p.AvailabilityText, &p.IsAvailable, &p.ShippingText, &shippingDate,
		&p.Source,
	); err != nil {
		return err
	}

	p.ShippingDate = dateFromSQL(shippingDate)
	return nil
}

// dateToSQL converts a calendar date to a DATE column value.
func dateToSQL(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

// dateFromSQL converts a DATE column value back to a calendar date.
func dateFromSQL(t *time.Time) *domain.Date {
	if t == nil {
		return nil
	}
	d := domain.DateOf(*t)
	return &d
}

package handlers_test

import (
	"context"

	"github.com/mhodgson/phone-catalog-tracker/internal/store"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

func ptr[T any](v T) *T { return &v }

// stubStore implements store.Store with canned responses for handler tests.
type stubStore struct {
	products []domain.PhoneProduct
	total    int
	product  *domain.PhoneProduct
	runs     []domain.ScrapeRun

	listErr    error
	getErr     error
	listRunErr error
	pingErr    error

	gotQuery *store.ProductQuery
	gotKey   string
}

func (s *stubStore) UpsertProduct(context.Context, *domain.PhoneProduct) error { return nil }

func (s *stubStore) GetProduct(_ context.Context, key string) (*domain.PhoneProduct, error) {
	s.gotKey = key
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.product, nil
}

func (s *stubStore) ListProducts(_ context.Context, q *store.ProductQuery) ([]domain.PhoneProduct, int, error) {
	s.gotQuery = q
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.products, s.total, nil
}

func (s *stubStore) CountProducts(context.Context) (int, error) { return s.total, nil }

func (s *stubStore) InsertScrapeRun(context.Context) (string, error) { return "run-1", nil }

func (s *stubStore) CompleteScrapeRun(context.Context, string, *domain.ScrapeRun) error { return nil }

func (s *stubStore) ListScrapeRuns(context.Context, int) ([]domain.ScrapeRun, error) {
	if s.listRunErr != nil {
		return nil, s.listRunErr
	}
	return s.runs, nil
}

func (s *stubStore) Migrate(context.Context) error { return nil }

func (s *stubStore) Ping(context.Context) error { return s.pingErr }

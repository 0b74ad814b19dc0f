package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

const defaultMaxPages = 10

// Fetcher fetches one listing page by number.
type Fetcher interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

// Paginator walks the listing site page by page, collecting raw products
// until a page comes back empty or the page budget is spent.
type Paginator struct {
	fetcher      Fetcher
	imageBaseURL string
	maxPages     int
	log          *slog.Logger
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithMaxPages overrides the page budget.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxPages = n
	}
}

// WithImageBaseURL sets the base URL relative image references are
// rebased onto.
func WithImageBaseURL(u string) PaginatorOption {
	return func(p *Paginator) {
		p.imageBaseURL = u
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.log = l
	}
}

// NewPaginator creates a Paginator over fetcher.
func NewPaginator(fetcher Fetcher, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		fetcher:  fetcher,
		maxPages: defaultMaxPages,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult holds the outcome of one crawl.
type PaginateResult struct {
	Products  []domain.ScrapedProduct
	PagesUsed int
	StoppedAt string // "empty_page", "max_pages", "fetch_error"
}

// Paginate fetches listing pages in order, starting at page 1, stopping
// at the first empty page, the page budget, or a fetch error on a later
// page (page 1 failing is a hard error - there is nothing to return).
// Every product carries a source reference naming the page it came from.
func (p *Paginator) Paginate(ctx context.Context) (*PaginateResult, error) {
	result := &PaginateResult{StoppedAt: "max_pages"}

	for page := 1; page <= p.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		htmlSrc, err := p.fetcher.FetchPage(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("fetching first listing page: %w", err)
			}
			p.log.Warn("stopping crawl on fetch error", "page", page, "error", err)
			result.StoppedAt = "fetch_error"
			break
		}

		source := "page" + strconv.Itoa(page)
		products, err := ParseListing(htmlSrc, source, p.imageBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing page %d: %w", page, err)
		}

		result.PagesUsed++

		if len(products) == 0 {
			result.StoppedAt = "empty_page"
			break
		}

		result.Products = append(result.Products, products...)
	}

	p.log.Info("crawl finished",
		"pages", result.PagesUsed,
		"products", len(result.Products),
		"stopped_at", result.StoppedAt,
	)

	return result, nil
}

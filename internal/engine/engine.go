// Package engine orchestrates the scrape cycle: crawl the listing site,
// resolve raw products into catalog entries, and persist the survivors.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhodgson/phone-catalog-tracker/internal/metrics"
	"github.com/mhodgson/phone-catalog-tracker/internal/pipeline"
	"github.com/mhodgson/phone-catalog-tracker/internal/scrape"
	"github.com/mhodgson/phone-catalog-tracker/internal/store"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// Crawler walks the listing site and returns raw products.
type Crawler interface {
	Paginate(ctx context.Context) (*scrape.PaginateResult, error)
}

// Engine runs scrape cycles against a Crawler and persists resolved
// products through the Store.
type Engine struct {
	store    store.Store
	crawler  Crawler
	resolver *pipeline.Pipeline
	log      *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(s store.Store, c Crawler, r *pipeline.Pipeline, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:    s,
		crawler:  c,
		resolver: r,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// RunScrape executes one full scrape cycle: crawl, resolve, dedupe, store.
// Individual upsert failures are logged and skipped; the cycle fails only
// when the crawl itself fails or the run cannot be recorded.
func (eng *Engine) RunScrape(ctx context.Context) (*domain.ScrapeRun, error) {
	start := time.Now()
	metrics.ScrapeCyclesTotal.Inc()
	defer func() {
		metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	runID, err := eng.store.InsertScrapeRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("recording scrape run: %w", err)
	}

	result, err := eng.crawler.Paginate(ctx)
	if err != nil {
		metrics.ScrapeErrorsTotal.Inc()
		eng.completeRun(ctx, runID, &domain.ScrapeRun{
			Status:    domain.RunStatusFailed,
			ErrorText: err.Error(),
		})
		return nil, fmt.Errorf("crawling listing site: %w", err)
	}

	metrics.ScrapePagesFetched.Add(float64(result.PagesUsed))
	metrics.ProductsScrapedTotal.Add(float64(len(result.Products)))

	resolved := eng.resolver.ResolveBatch(result.Products)
	metrics.ProductsResolvedTotal.Add(float64(len(resolved)))
	metrics.ProductsDroppedDuplicates.Add(float64(len(result.Products) - len(resolved)))

	var unclassified int
	for i := range resolved {
		if resolved[i].Model == nil {
			unclassified++
		}
	}
	metrics.ProductsUnclassifiedTotal.Add(float64(unclassified))

	stored := 0
	for i := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := eng.store.UpsertProduct(ctx, &resolved[i]); err != nil {
			eng.log.Error("upsert failed", "identity_key", resolved[i].IdentityKey(), "error", err)
			continue
		}
		stored++
	}

	run := &domain.ScrapeRun{
		ID:             runID,
		Status:         domain.RunStatusCompleted,
		PagesUsed:      result.PagesUsed,
		ProductsFound:  len(result.Products),
		ProductsStored: stored,
	}
	eng.completeRun(ctx, runID, run)

	eng.log.Info("scrape cycle finished",
		"run_id", runID,
		"pages", result.PagesUsed,
		"found", len(result.Products),
		"resolved", len(resolved),
		"stored", stored,
		"unclassified", unclassified,
		"stopped_at", result.StoppedAt,
	)

	return run, nil
}

func (eng *Engine) completeRun(ctx context.Context, id string, run *domain.ScrapeRun) {
	if err := eng.store.CompleteScrapeRun(ctx, id, run); err != nil {
		eng.log.Error("completing scrape run failed", "run_id", id, "error", err)
	}
}

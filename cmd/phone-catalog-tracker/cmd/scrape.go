package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhodgson/phone-catalog-tracker/internal/config"
	"github.com/mhodgson/phone-catalog-tracker/internal/pipeline"
	"github.com/mhodgson/phone-catalog-tracker/internal/scrape"
	"github.com/mhodgson/phone-catalog-tracker/pkg/logger"
)

var scrapeOutput string

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Crawl the shop once and write resolved products to a JSON file",
	RunE:  runScrapeOnce,
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "output.json", "output file path")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrapeOnce(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := scrape.NewClient(cfg.Scraper.BaseURL,
		scrape.WithHTTPClient(&http.Client{Timeout: cfg.Scraper.Timeout}),
		scrape.WithRateLimit(cfg.Scraper.RateLimit.PerSecond, cfg.Scraper.RateLimit.Burst),
		scrape.WithClientLogger(logger.Component(log, "scraper")),
	)

	paginator := scrape.NewPaginator(client,
		scrape.WithMaxPages(cfg.Scraper.MaxPages),
		scrape.WithImageBaseURL(cfg.Scraper.ImageBaseURL),
		scrape.WithPaginatorLogger(logger.Component(log, "scraper")),
	)

	result, err := paginator.Paginate(ctx)
	if err != nil {
		return fmt.Errorf("crawling listing site: %w", err)
	}

	resolver := pipeline.New(pipeline.WithLogger(logger.Component(log, "pipeline")))
	products := resolver.ResolveBatch(result.Products)

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding products: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(scrapeOutput, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("writing %s: %w", scrapeOutput, err)
	}

	log.Info("scrape complete",
		"pages", result.PagesUsed,
		"found", len(result.Products),
		"resolved", len(products),
		"output", scrapeOutput,
	)

	return nil
}

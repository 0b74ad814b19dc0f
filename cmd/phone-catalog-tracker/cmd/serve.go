package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mhodgson/phone-catalog-tracker/internal/api/handlers"
	"github.com/mhodgson/phone-catalog-tracker/internal/api/middleware"
	"github.com/mhodgson/phone-catalog-tracker/internal/config"
	"github.com/mhodgson/phone-catalog-tracker/internal/engine"
	"github.com/mhodgson/phone-catalog-tracker/internal/pipeline"
	"github.com/mhodgson/phone-catalog-tracker/internal/scrape"
	"github.com/mhodgson/phone-catalog-tracker/internal/store"
	"github.com/mhodgson/phone-catalog-tracker/pkg/logger"
)

// apiPrefix is the route group all API endpoints register under; the
// metrics middleware measures exactly this surface.
const apiPrefix = "/api/v1"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scrape scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(),
		store.WithPoolSize(cfg.Database.PoolSize),
		store.WithStoreLogger(logger.Component(log, "store")),
	)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pg.Close()

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
	resolver := pipeline.New(pipeline.WithLogger(logger.Component(log, "pipeline")))

	eng := engine.NewEngine(pg, paginator, resolver,
		engine.WithLogger(logger.Component(log, "engine")),
	)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.ScrapeInterval, logger.Component(log, "scheduler"))
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := echo.New()
	configureServer(e, cfg.Server)

	e.Use(middleware.RequestLog(logger.Component(log, "http")))
	e.Use(middleware.Recovery())
	e.Use(middleware.Metrics(apiPrefix))

	handlers.NewHealthHandler(pg).Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group(apiPrefix)
	handlers.NewProductsHandler(pg).Register(v1)
	handlers.NewRunsHandler(pg).Register(v1)
	handlers.NewScrapeHandler(eng).Register(v1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	// Let in-flight cron jobs finish before the server stops answering.
	<-sched.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// configureServer applies the configured HTTP server settings to the echo
// instance.
func configureServer(e *echo.Echo, cfg config.ServerConfig) {
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
}

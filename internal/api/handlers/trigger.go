package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhodgson/phone-catalog-tracker/internal/api/middleware"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// Scraper defines the interface for triggering a scrape cycle.
type Scraper interface {
	RunScrape(ctx context.Context) (*domain.ScrapeRun, error)
}

// ScrapeHandler handles manual scrape trigger requests.
type ScrapeHandler struct {
	scraper Scraper
}

// NewScrapeHandler creates a new ScrapeHandler.
func NewScrapeHandler(s Scraper) *ScrapeHandler {
	return &ScrapeHandler{scraper: s}
}

// Scrape runs one full scrape cycle and returns its summary.
func (h *ScrapeHandler) Scrape(c echo.Context) error {
	run, err := h.scraper.RunScrape(c.Request().Context())
	if err != nil {
		middleware.Logger(c).Error("scrape failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "scrape failed: "+err.Error())
	}

	return c.JSON(http.StatusOK, run)
}

// Register wires the trigger endpoint onto the API group.
func (h *ScrapeHandler) Register(g *echo.Group) {
	g.POST("/scrape", h.Scrape)
}

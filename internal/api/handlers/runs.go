package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mhodgson/phone-catalog-tracker/internal/api/middleware"
	"github.com/mhodgson/phone-catalog-tracker/internal/store"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// RunsHandler exposes scrape run history.
type RunsHandler struct {
	store store.Store
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(s store.Store) *RunsHandler {
	return &RunsHandler{store: s}
}

// ListRunsResponse is the response for listing scrape runs.
type ListRunsResponse struct {
	Runs []domain.ScrapeRun `json:"runs"`
}

// ListRuns returns recent scrape runs, newest first.
func (h *RunsHandler) ListRuns(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	runs, err := h.store.ListScrapeRuns(c.Request().Context(), limit)
	if err != nil {
		middleware.Logger(c).Error("run query failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "run query failed")
	}

	if runs == nil {
		runs = []domain.ScrapeRun{}
	}

	return c.JSON(http.StatusOK, ListRunsResponse{Runs: runs})
}

// Register wires the run endpoints onto the API group.
func (h *RunsHandler) Register(g *echo.Group) {
	g.GET("/runs", h.ListRuns)
}

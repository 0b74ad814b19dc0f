package client

import (
	"context"
	"strconv"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// RunsResponse wraps a scrape run listing response.
type RunsResponse struct {
	Runs []domain.ScrapeRun `json:"runs"`
}

// ListRuns returns recent scrape runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) (*RunsResponse, error) {
	path := "/api/v1/runs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	resp := &RunsResponse{}
	if err := c.get(ctx, path, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TriggerScrape runs one scrape cycle on the server and returns its summary.
func (c *Client) TriggerScrape(ctx context.Context) (*domain.ScrapeRun, error) {
	run := &domain.ScrapeRun{}
	if err := c.post(ctx, "/api/v1/scrape", run); err != nil {
		return nil, err
	}
	return run, nil
}

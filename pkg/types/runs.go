package domain

import "time"

// Scrape run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ScrapeRun records one crawl of the listing site: when it ran, how far
// it got, and how many products survived resolution and dedup.
type ScrapeRun struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	PagesUsed      int        `json:"pages_used"`
	ProductsFound  int        `json:"products_found"`
	ProductsStored int        `json:"products_stored"`
	ErrorText      string     `json:"error_text,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

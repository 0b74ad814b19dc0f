// Package pipeline turns raw scraped products into a canonical,
// deduplicated phone catalog. Resolution is pure: classification tables and
// the date trigger vocabulary are fixed at construction, every unresolved
// field comes back nil, and no input can produce an error.
package pipeline

import (
	"log/slog"

	"github.com/mhodgson/phone-catalog-tracker/pkg/extract"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// Pipeline resolves scraped products one at a time and deduplicates
// batches by identity key. Safe for concurrent use across batches.
type Pipeline struct {
	models   *extract.ModelClassifier
	versions *extract.VersionClassifier
	dates    *extract.DateResolver
	log      *slog.Logger
}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithModelClassifier overrides the stock model classification table.
func WithModelClassifier(c *extract.ModelClassifier) Option {
	return func(p *Pipeline) {
		p.models = c
	}
}

// WithVersionClassifier overrides the stock version classification table.
func WithVersionClassifier(c *extract.VersionClassifier) Option {
	return func(p *Pipeline) {
		p.versions = c
	}
}

// WithDateResolver overrides the stock date resolver; tests use this to
// pin the clock.
func WithDateResolver(r *extract.DateResolver) Option {
	return func(p *Pipeline) {
		p.dates = r
	}
}

// New creates a Pipeline with the stock classification tables.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		models:   extract.NewModelClassifier(extract.DefaultModelTable),
		versions: extract.NewVersionClassifier(extract.DefaultVersionTable),
		dates:    extract.NewDateResolver(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve turns one scraped product into its canonical form. Text fields
// are normalized first, then availability and delivery date are derived
// from the normalized text, then model, version and capacity from the raw
// title. Price, image, colour and source carry through unchanged.
func (p *Pipeline) Resolve(raw domain.ScrapedProduct) domain.PhoneProduct {
	availability := extract.CollapseWhitespace(raw.AvailabilityText)
	shipping := extract.CollapseWhitespace(raw.ShippingText)

	model := p.models.Classify(raw.Title)

	return domain.PhoneProduct{
		Title:            raw.Title,
		Model:            model,
		Version:          p.versions.Classify(raw.Title, model),
		CapacityMB:       extract.CapacityMegabytes(raw.Title),
		Colour:           raw.Colour,
		ImageURL:         raw.ImageURL,
		Price:            raw.Price,
		AvailabilityText: availability,
		IsAvailable:      extract.IsAvailable(availability),
		ShippingText:     shipping,
		ShippingDate:     p.dates.Resolve(shipping),
		Source:           raw.Source,
	}
}

// ResolveBatch resolves every product in input order (one canonical
// product per raw product) and then deduplicates, keeping the first
// occurrence of each identity key.
func (p *Pipeline) ResolveBatch(raws []domain.ScrapedProduct) []domain.PhoneProduct {
	resolved := make([]domain.PhoneProduct, 0, len(raws))
	for i := range raws {
		resolved = append(resolved, p.Resolve(raws[i]))
	}

	deduped := Dedupe(resolved)

	p.log.Debug("batch resolved",
		"raw", len(raws),
		"unique", len(deduped),
		"duplicates", len(resolved)-len(deduped),
	)

	return deduped
}

// Dedupe keeps the first occurrence of each identity key, preserving
// encounter order. A single linear pass; no sorting.
func Dedupe(products []domain.PhoneProduct) []domain.PhoneProduct {
	seen := make(map[string]struct{}, len(products))
	kept := make([]domain.PhoneProduct, 0, len(products))

	for i := range products {
		key := products[i].IdentityKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, products[i])
	}

	return kept
}

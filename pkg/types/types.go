// Package domain defines the core business types for phone-catalog-tracker.
package domain

import (
	"strconv"
	"strings"
)

// ScrapedProduct is one raw unit lifted off a listing page, exactly as the
// scraper found it. One ScrapedProduct is produced per colour variant of a
// product card. Fields are never cleaned up here; resolution happens in the
// pipeline.
type ScrapedProduct struct {
	Title            string  `json:"title"`
	Price            string  `json:"price"`
	ImageURL         string  `json:"image_url"`
	Colour           string  `json:"colour"`
	Capacity         *string `json:"capacity"`
	AvailabilityText *string `json:"availability_text"`
	ShippingText     *string `json:"shipping_text"`
	Source           string  `json:"source"`
}

// PhoneProduct is the canonical, resolved form of a scraped product.
//
// Model, Version, CapacityMB and ShippingDate are derived from free text and
// are nil when the underlying text gave no match. nil means "unresolved",
// which is a valid state, not an error; JSON output keeps an explicit null
// so consumers can tell unresolved apart from empty.
type PhoneProduct struct {
	Title            string  `json:"title"`
	Model            *string `json:"model"`
	Version          *string `json:"version"`
	CapacityMB       *int    `json:"capacity_mb"`
	Colour           string  `json:"colour"`
	ImageURL         string  `json:"image_url"`
	Price            string  `json:"price"`
	AvailabilityText *string `json:"availability_text"`
	IsAvailable      bool    `json:"is_available"`
	ShippingText     *string `json:"shipping_text"`
	ShippingDate     *Date   `json:"shipping_date"`
	Source           string  `json:"source"`
}

// IdentityKey returns the dedup key for the product:
// model:version:colour:capacityMB with every space removed. Unresolved
// fields contribute empty segments, so two products that failed to classify
// the same way still collide. Price, dates and source are deliberately
// excluded: the same phone seen on two pages at two prices is one phone.
func (p *PhoneProduct) IdentityKey() string {
	var b strings.Builder
	b.WriteString(strPtr(p.Model))
	b.WriteByte(':')
	b.WriteString(strPtr(p.Version))
	b.WriteByte(':')
	b.WriteString(p.Colour)
	b.WriteByte(':')
	if p.CapacityMB != nil {
		b.WriteString(strconv.Itoa(*p.CapacityMB))
	}
	return strings.ReplaceAll(b.String(), " ", "")
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// orDash renders an unresolved field as "-".
func orDash[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func printProductsTable(products []domain.PhoneProduct) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("MODEL\tVERSION\tCOLOUR\tCAPACITY MB\tPRICE\tAVAILABLE\tSHIP DATE\n")
	for i := range products {
		p := &products[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%v\t%s\n",
			orDash(p.Model),
			orDash(p.Version),
			p.Colour,
			orDash(p.CapacityMB),
			p.Price,
			p.IsAvailable,
			orDash(p.ShippingDate),
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.PhoneProduct) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Title:\t%s\n", p.Title)
	tw.writef("Model:\t%s\n", orDash(p.Model))
	tw.writef("Version:\t%s\n", orDash(p.Version))
	tw.writef("Colour:\t%s\n", p.Colour)
	tw.writef("Capacity MB:\t%s\n", orDash(p.CapacityMB))
	tw.writef("Price:\t%s\n", p.Price)
	tw.writef("Available:\t%v\n", p.IsAvailable)
	tw.writef("Availability:\t%s\n", orDash(p.AvailabilityText))
	tw.writef("Shipping:\t%s\n", orDash(p.ShippingText))
	tw.writef("Ship Date:\t%s\n", orDash(p.ShippingDate))
	tw.writef("Image:\t%s\n", p.ImageURL)
	tw.writef("Source:\t%s\n", p.Source)
	tw.writef("Identity Key:\t%s\n", p.IdentityKey())
	return tw.finish()
}

func printRunsTable(runs []domain.ScrapeRun) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tSTATUS\tPAGES\tFOUND\tSTORED\tSTARTED\n")
	for i := range runs {
		r := &runs[i]
		tw.writef("%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.Status,
			r.PagesUsed,
			r.ProductsFound,
			r.ProductsStored,
			r.StartedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package main implements a mock listing site for local development.
// It renders paginated product-card HTML from a small built-in catalog so
// the scraper can be exercised without hitting a real shop.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type mockProduct struct {
	Title        string
	Price        string
	Image        string
	Colours      []string
	Availability string
	Shipping     string
}

var catalog = []mockProduct{
	{
		Title:        "iPhone 12 Pro Max 128GB",
		Price:        "999.99",
		Image:        "../images/iphone-12-pro-max.png",
		Colours:      []string{"pacific blue", "graphite"},
		Availability: "Availability: In Stock Online",
		Shipping:     "Free Delivery tomorrow",
	},
	{
		Title:        "Samsung Galaxy S20 Ultra 512GB",
		Price:        "1199.00",
		Image:        "../images/galaxy-s20-ultra.png",
		Colours:      []string{"cosmic grey"},
		Availability: "Availability: In Stock",
		Shipping:     "Delivery from Friday 9th May 2025",
	},
	{
		Title:        "Nokia 3310 100MB",
		Price:        "59.99",
		Image:        "../images/nokia-3310.png",
		Colours:      []string{"orange", "grey"},
		Availability: "Availability: Out of Stock",
		Shipping:     "Delivers 2025-05-20",
	},
	{
		Title:        "Huawei P30 Pro 256GB",
		Price:        "649.00",
		Image:        "../images/huawei-p30-pro.png",
		Colours:      []string{"breathing crystal"},
		Availability: "Availability: In Stock",
		Shipping:     "Order within 4 hours and have it tomorrow",
	},
	{
		Title:        "Sony Xperia 1 II 256GB",
		Price:        "899.00",
		Image:        "../images/xperia-1-ii.png",
		Colours:      []string{"purple"},
		Availability: "Availability: In Stock Online",
		Shipping:     "Available on Thursday 10th Apr 2025",
	},
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	perPage := flag.Int("per-page", 2, "products per page")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", listingHandler(logger, *perPage))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock listing site", "addr", addr, "products", len(catalog))

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func listingHandler(logger *slog.Logger, perPage int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if v := r.URL.Query().Get("page"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "bad page", http.StatusBadRequest)
				return
			}
			page = n
		}

		logger.Debug("request", "path", r.URL.Path, "page", page)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, renderPage(pageSlice(page, perPage)))
	}
}

func pageSlice(page, perPage int) []mockProduct {
	start := (page - 1) * perPage
	if start >= len(catalog) {
		return nil
	}
	end := min(start+perPage, len(catalog))
	return catalog[start:end]
}

func renderPage(products []mockProduct) string {
	var b strings.Builder
	b.WriteString("<html><body><div id=\"products\">\n")
	for _, p := range products {
		b.WriteString("<div class=\"product\">\n")
		fmt.Fprintf(&b, "  <img src=%q>\n", p.Image)
		fmt.Fprintf(&b, "  <h3>%s</h3>\n", p.Title)
		for _, colour := range p.Colours {
			fmt.Fprintf(&b, "  <span data-colour=%q></span>\n", colour)
		}
		fmt.Fprintf(&b, "  <div class=\"price\">Our price: £%s</div>\n", p.Price)
		fmt.Fprintf(&b, "  <div class=\"availability\"><div>%s</div></div>\n", p.Availability)
		fmt.Fprintf(&b, "  <div class=\"shipping\"><div>%s</div></div>\n", p.Shipping)
		b.WriteString("</div>\n")
	}
	b.WriteString("</div></body></html>\n")
	return b.String()
}

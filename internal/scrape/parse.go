package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/mhodgson/phone-catalog-tracker/pkg/extract"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// pricePattern lifts the numeric price out of a product card's text, e.g.
// "Our price: £99.99" -> "99.99".
var pricePattern = regexp.MustCompile(`£(\d+\.\d*)`)

// ParseListing extracts raw products from a listing page. Each product
// card yields one ScrapedProduct per colour variant, tagged with source.
// Relative image URLs are rebased onto imageBaseURL.
//
// Cards are identified by <div class="product">; within a card the title
// is the first <h3>, colour variants are <span data-colour> attributes,
// and the availability and shipping blurbs are the last <div> whose text
// mentions "availability" / "delivery". All of it is site-specific markup
// knowledge that stays confined to this file.
func ParseListing(htmlSrc, source, imageBaseURL string) ([]domain.ScrapedProduct, error) {
	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	var products []domain.ScrapedProduct
	for _, card := range findAll(doc, isProductCard) {
		products = append(products, parseCard(card, source, imageBaseURL)...)
	}

	return products, nil
}

func parseCard(card *html.Node, source, imageBaseURL string) []domain.ScrapedProduct {
	title := firstText(card, "h3")
	price := cardPrice(card)
	image := rebaseImage(firstAttr(card, "img", "src"), imageBaseURL)
	availability := lastDivContaining(card, "availability")
	shipping := lastDivContaining(card, "delivery")
	capacity := extract.CapacityToken(title)

	variants := colourVariants(card)

	products := make([]domain.ScrapedProduct, 0, len(variants))
	for _, colour := range variants {
		products = append(products, domain.ScrapedProduct{
			Title:            title,
			Price:            price,
			ImageURL:         image,
			Colour:           colour,
			Capacity:         capacity,
			AvailabilityText: availability,
			ShippingText:     shipping,
			Source:           source,
		})
	}

	return products
}

func isProductCard(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "product")
}

func cardPrice(card *html.Node) string {
	for _, div := range findAll(card, isElement("div")) {
		if match := pricePattern.FindStringSubmatch(nodeText(div)); match != nil {
			return match[1]
		}
	}
	return ""
}

func colourVariants(card *html.Node) []string {
	var colours []string
	for _, span := range findAll(card, isElement("span")) {
		if colour, ok := attrValue(span, "data-colour"); ok {
			colours = append(colours, colour)
		}
	}
	return colours
}

// lastDivContaining returns the text of the last div whose content
// mentions needle, case-insensitively, or nil when no div does. The last
// match wins because the site nests matching wrapper divs around the one
// holding the actual blurb.
func lastDivContaining(card *html.Node, needle string) *string {
	var found *string
	for _, div := range findAll(card, isElement("div")) {
		text := nodeText(div)
		if strings.Contains(strings.ToLower(text), needle) {
			t := text
			found = &t
		}
	}
	return found
}

func rebaseImage(src, imageBaseURL string) string {
	if src == "" || imageBaseURL == "" {
		return src
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	trimmed := strings.TrimPrefix(src, "..")
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimSuffix(imageBaseURL, "/") + trimmed
}

// --- node helpers ---

func isElement(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

// findAll walks the subtree under n and collects every node matching pred.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, pred)...)
	}
	return out
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	val, ok := attrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(val) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText concatenates all text content under n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func firstText(card *html.Node, element string) string {
	nodes := findAll(card, isElement(element))
	if len(nodes) == 0 {
		return ""
	}
	return strings.TrimSpace(nodeText(nodes[0]))
}

func firstAttr(card *html.Node, element, key string) string {
	for _, n := range findAll(card, isElement(element)) {
		if val, ok := attrValue(n, key); ok {
			return val
		}
	}
	return ""
}

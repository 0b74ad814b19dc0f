package extract

import "strings"

// IsAvailable reports whether availability text indicates stock: a
// case-insensitive "in stock" substring check. nil or empty text is
// treated as out of stock.
func IsAvailable(text *string) bool {
	if text == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*text), "in stock")
}

package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// capacityPattern matches a storage token in free text: a digit run followed
// by an optional single space and a GB/MB unit, case-insensitive.
// Examples: "128GB", "512 mb", "64Gb".
var capacityPattern = regexp.MustCompile(`(?i)\d+\s?(?:GB|MB)`)

var leadingDigits = regexp.MustCompile(`^\d+`)

// CapacityToken returns the first storage token found in text, preserving
// its original casing and spacing. Returns nil if text has no token.
func CapacityToken(text string) *string {
	match := capacityPattern.FindString(text)
	if match == "" {
		return nil
	}
	return &match
}

// CapacityMegabytes returns the storage capacity found in text, normalized
// to megabytes. Returns nil if no storage token is present.
//
// NOTE: the MB branch applies the same x1024 multiplier as the GB branch,
// so "100MB" resolves to 102400. This matches the upstream feed's observed
// arithmetic and is almost certainly a latent defect there, but stored
// capacities are keyed on it; changing it requires re-baselining the catalog.
func CapacityMegabytes(text string) *int {
	token := CapacityToken(text)
	if token == nil {
		return nil
	}

	magnitude, err := strconv.Atoi(leadingDigits.FindString(*token))
	if err != nil {
		return nil
	}

	mb := magnitude * 1024
	if strings.Contains(strings.ToLower(*token), "gb") {
		return &mb
	}

	// MB tokens get the same multiplier; see NOTE above.
	return &mb
}

package extract

import "strings"

// DefaultVersionTable lists the known version labels per model.
//
// Each list is ordered most-specific-first: "12 Pro Max" must come before
// "12 Pro" before "12", or the shorter label would shadow the longer one
// under substring matching. The same applies across model numbers whose
// names nest, e.g. every "Xperia 10 ..." label sits before "Xperia 1".
var DefaultVersionTable = map[string][]string{
	"iphone": {
		"13 Pro Max",
		"13 Pro",
		"13",
		"12 Pro Max",
		"12 Pro",
		"12",
		"11 Pro",
		"11",
	},
	"nokia": {
		"3310 4G Dual SIM",
		"3310 Dual SIM",
		"3310 4G",
		"3310",
	},
	"huawei": {
		"P30 Pro",
		"P30",
		"P40 Pro+",
		"P40 Pro",
		"P40",
		"P50 Pro",
		"P50",
	},
	"samsung": {
		"Galaxy S20 Ultra",
		"Galaxy S20+",
		"Galaxy S20",
		"Galaxy S21+",
		"Galaxy S21",
		"Galaxy Flip",
	},
	"google pixel": {
		"Pixel 4 XL",
		"Pixel 4",
		"Pixel 5 Pro",
		"Pixel 5",
		"Pixel 6 Pro",
		"Pixel 6",
		"Pixel 7 Pro",
		"Pixel 7",
		"Pixel 8 Pro",
		"Pixel 8",
	},
	"sony": {
		"Xperia 10 VII",
		"Xperia 10 VI",
		"Xperia 10 V",
		"Xperia 10 IV",
		"Xperia 10 III",
		"Xperia 10 II",
		"Xperia 10",
		"Xperia 1 III",
		"Xperia 1 II",
		"Xperia 1",
		"Xperia 5 II",
		"Xperia 5",
	},
	"oppo": {
		"Reno 10 Pro+",
		"Reno 10 Pro",
		"Reno 10",
	},
	"lg": {
		"G8X ThinQ",
		"G8X",
		"G8 ThinQ",
		"G8",
		"G9X ThinQ",
		"G9X",
		"G9 ThinQ",
		"G9",
		"G10 Plus",
		"G10",
		"K42 Plus",
		"K42",
		"K52 Plus",
		"K52",
		"K62 Plus",
		"K62",
	},
}

// VersionClassifier maps a listing title to a model-scoped version label.
// The table is fixed at construction; safe for concurrent use.
type VersionClassifier struct {
	versions map[string][]string
}

// NewVersionClassifier creates a classifier over the given per-model
// version lists. Pass DefaultVersionTable for the stock configuration.
func NewVersionClassifier(versions map[string][]string) *VersionClassifier {
	return &VersionClassifier{versions: versions}
}

// Classify returns the first version label registered for model whose text
// occurs in title, case-insensitively. Returns nil when model is nil,
// unregistered, or no label matches. The returned label keeps its table
// casing regardless of how the title spelled it.
func (c *VersionClassifier) Classify(title string, model *string) *string {
	if model == nil {
		return nil
	}

	lower := strings.ToLower(title)

	for _, version := range c.versions[*model] {
		if strings.Contains(lower, strings.ToLower(version)) {
			v := version
			return &v
		}
	}

	return nil
}

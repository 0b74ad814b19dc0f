package extract

import "strings"

// ModelKeywords associates one model label with the ordered keywords that
// identify it in a listing title.
type ModelKeywords struct {
	Model    string
	Keywords []string
}

// DefaultModelTable is the model classification table observed on the
// source listing site. Order matters twice over: models are tried top to
// bottom and keywords left to right, and the first keyword found anywhere
// in the title decides the model. Keywords are stored lowercase; matching
// is case-insensitive substring search.
var DefaultModelTable = []ModelKeywords{
	{Model: "iphone", Keywords: []string{"iphone", "apple"}},
	{Model: "samsung", Keywords: []string{"samsung galaxy", "samsung", "galaxy"}},
	{Model: "huawei", Keywords: []string{"huawei p", "huawei", "hau"}},
	{Model: "nokia", Keywords: []string{"nokia"}},
	{Model: "google pixel", Keywords: []string{"google pixel", "google", "pixel"}},
	{Model: "sony", Keywords: []string{"sony xperia", "sony", "xperia"}},
	{Model: "oppo", Keywords: []string{"oppo reno", "oppo", "reno"}},
	{Model: "lg", Keywords: []string{"lg g", "lg k", "lg"}},
}

// ModelClassifier maps listing titles to model labels via an ordered
// keyword table fixed at construction. Safe for concurrent use.
type ModelClassifier struct {
	table []ModelKeywords
}

// NewModelClassifier creates a classifier over the given table. Pass
// DefaultModelTable for the stock configuration.
func NewModelClassifier(table []ModelKeywords) *ModelClassifier {
	return &ModelClassifier{table: table}
}

// Classify returns the model label for title, or nil if no keyword in the
// table occurs in it. Deterministic: ties are broken by table order, never
// by keyword position within the title.
func (c *ModelClassifier) Classify(title string) *string {
	lower := strings.ToLower(title)

	for _, entry := range c.table {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				model := entry.Model
				return &model
			}
		}
	}

	return nil
}

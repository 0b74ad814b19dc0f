package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// dateRule pairs a trigger phrase with an operand extractor. Rules are
// evaluated in declaration order and the first trigger found in the text
// wins, so the ordering contract lives in one place instead of a
// conditional ladder. A nil extractor resolves directly to tomorrow.
type dateRule struct {
	trigger string
	operand func(text string) string
}

// orderWithinPattern captures the delivery promise out of countdown copy
// like "Order within 2 hours and have it Monday 5th May 2025".
var orderWithinPattern = regexp.MustCompile(`Order within .* and have it (.*)`)

// DateResolver parses free-text shipping and delivery sentences into
// calendar dates. The trigger vocabulary is the finite set of phrasings
// observed on the source listing site; anything else resolves to nil.
// Construction is cheap and the resolver is safe for concurrent use.
type DateResolver struct {
	now   func() time.Time
	rules []dateRule
}

// DateResolverOption configures the DateResolver.
type DateResolverOption func(*DateResolver)

// WithClock overrides the resolver's clock. Relative phrases ("tomorrow")
// resolve against this clock's local calendar day.
func WithClock(now func() time.Time) DateResolverOption {
	return func(r *DateResolver) {
		r.now = now
	}
}

// NewDateResolver creates a DateResolver with the stock trigger table.
func NewDateResolver(opts ...DateResolverOption) *DateResolver {
	r := &DateResolver{now: time.Now}

	// Trigger phrases are matched case-sensitively, in this order.
	// "tomorrow" must stay first: "Free Delivery tomorrow" is a relative
	// date, not a Free Delivery operand.
	r.rules = []dateRule{
		{trigger: "tomorrow", operand: nil},
		{trigger: "Delivery by", operand: afterPhrase("Delivery by")},
		{trigger: "Available on", operand: afterPhrase("Available on")},
		{trigger: "Delivery from", operand: afterPhrase("Delivery from")},
		{trigger: "Delivers", operand: afterPhrase("Delivers")},
		{trigger: "Free Delivery", operand: afterPhrase("Free Delivery")},
		{trigger: "Order within", operand: orderWithinOperand},
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses text into a calendar date. Returns nil for nil text, for
// text matching no trigger, and for any operand that fails to parse; a
// malformed date never surfaces as an error.
func (r *DateResolver) Resolve(text *string) *domain.Date {
	if text == nil {
		return nil
	}

	for _, rule := range r.rules {
		if !strings.Contains(*text, rule.trigger) {
			continue
		}
		if rule.operand == nil {
			return r.tomorrow()
		}
		return r.parseOperand(rule.operand(*text))
	}

	return nil
}

func (r *DateResolver) tomorrow() *domain.Date {
	d := domain.DateOf(r.now().AddDate(0, 0, 1))
	return &d
}

// afterPhrase extracts everything following the trigger phrase and its
// separating space.
func afterPhrase(phrase string) func(string) string {
	return func(text string) string {
		idx := strings.Index(text, phrase)
		rest := text[idx+len(phrase):]
		return strings.TrimPrefix(rest, " ")
	}
}

func orderWithinOperand(text string) string {
	match := orderWithinPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// weekdayNames is the probe set for the begins-with-weekday check.
var weekdayNames = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// ordinalSuffixes is the probe set for the has-suffix check. The probe
// compares the entire operand against these bare tokens, not the day
// token, so it only fires when the operand is literally "st"/"nd"/"rd"/
// "th" - in practice the no-suffix branch does all the work. Kept exactly
// as the site's copy has always been parsed.
var ordinalSuffixes = map[string]struct{}{
	"st": {}, "nd": {}, "rd": {}, "th": {},
}

// parseOperand is the shared fallback for every non-relative trigger. It
// handles a nested "tomorrow", ISO dates, and the four day/month/year
// shapes selected by the weekday/suffix probes.
func (r *DateResolver) parseOperand(operand string) *domain.Date {
	if operand == "" {
		return nil
	}

	if strings.Contains(operand, "tomorrow") {
		return r.tomorrow()
	}

	if strings.Contains(operand, "-") {
		t, err := time.Parse("2006-01-02", operand)
		if err != nil {
			return nil
		}
		d := domain.DateOf(t)
		return &d
	}

	tokens := strings.Fields(operand)
	if len(tokens) == 0 {
		return nil
	}

	_, beginsWithWeekday := weekdayNames[strings.ToLower(tokens[0])]
	_, hasSuffix := ordinalSuffixes[strings.ToLower(operand)]

	if beginsWithWeekday {
		tokens = tokens[1:]
	}

	// The suffix probe chooses between a plain day number ("9") and an
	// ordinal one ("9th"): a bare-suffix operand means the day carries no
	// suffix, everything else is expected to carry one.
	return parseDayMonthYear(tokens, !hasSuffix)
}

var (
	ordinalDayPattern = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)$`)
	plainDayPattern   = regexp.MustCompile(`^\d{1,2}$`)
	yearPattern       = regexp.MustCompile(`^\d{4}$`)
)

// parseDayMonthYear parses tokens shaped like ["9th", "May", "2025"] (or
// ["9", "May", "2025"] when ordinal is false) into a validated date.
func parseDayMonthYear(tokens []string, ordinal bool) *domain.Date {
	if len(tokens) != 3 {
		return nil
	}

	dayToken := tokens[0]
	if ordinal {
		match := ordinalDayPattern.FindStringSubmatch(dayToken)
		if match == nil {
			return nil
		}
		dayToken = match[1]
	} else if !plainDayPattern.MatchString(dayToken) {
		return nil
	}

	day, err := strconv.Atoi(dayToken)
	if err != nil {
		return nil
	}

	month, ok := monthByName(tokens[1])
	if !ok {
		return nil
	}

	if !yearPattern.MatchString(tokens[2]) {
		return nil
	}
	year, err := strconv.Atoi(tokens[2])
	if err != nil {
		return nil
	}

	d, err := domain.NewDate(year, month, day)
	if err != nil {
		return nil
	}
	return &d
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthByName resolves a month token, accepting both the three-letter
// abbreviation ("Apr") and the full name ("April"), case-insensitively.
func monthByName(token string) (time.Month, bool) {
	lower := strings.ToLower(token)
	for i, name := range monthNames {
		if lower == name || lower == name[:3] {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

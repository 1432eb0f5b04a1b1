// Package normalize holds the shared pure value-normalization routines used
// by every feed adapter. All "default on unparseable input" decisions live
// here so the policy is auditable in one place.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"newbuild-aggregator/models"
)

var (
	// numberRegexp captures the first numeric value in a raw price string
	numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// slugStripRegexp removes everything that is not a word character,
	// whitespace or hyphen
	slugStripRegexp = regexp.MustCompile(`[^\w\s-]`)
	// slugRunsRegexp collapses whitespace/underscore/hyphen runs
	slugRunsRegexp = regexp.MustCompile(`[\s_-]+`)
	// tagRegexp matches HTML/XML markup carried in feed descriptions
	tagRegexp = regexp.MustCompile(`<[^>]*>`)
	// refCodeRegexp matches source reference codes like "#ref:N9525"
	refCodeRegexp = regexp.MustCompile(`#ref:\S+`)
)

// propertyTypeTable is the closed synonym vocabulary for property types.
var propertyTypeTable = map[string]string{
	"apartamento": "apartment",
	"apartment":   "apartment",
	"flat":        "apartment",
	"piso":        "apartment",
	"atico":       "penthouse",
	"ático":       "penthouse",
	"penthouse":   "penthouse",
	"villa":       "villa",
	"chalet":      "villa",
	"detached":    "villa",
	"adosado":     "townhouse",
	"townhouse":   "townhouse",
	"town house":  "townhouse",
	"bungalow":    "bungalow",
	"duplex":      "duplex",
}

// Price parses a raw price value. Non-numeric or non-positive input yields
// nil, meaning "price on request" — never zero.
func Price(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return nil
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil || val <= 0 {
		return nil
	}
	return &val
}

// Status maps a raw status string onto the closed status vocabulary using a
// fixed keyword priority.
func Status(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return models.StatusUnderConstruction
	case strings.Contains(s, "key") || strings.Contains(s, "ready") || strings.Contains(s, "llave"):
		return models.StatusKeyReady
	case strings.Contains(s, "sold") || strings.Contains(s, "vendido"):
		return models.StatusSold
	case strings.Contains(s, "off-plan") || strings.Contains(s, "off plan") || strings.Contains(s, "plano"):
		return models.StatusOffPlan
	case strings.Contains(s, "3 month") || strings.Contains(s, "próxima") || strings.Contains(s, "proxima"):
		return models.StatusCompletionSoon
	default:
		return models.StatusUnderConstruction
	}
}

// PropertyType resolves a raw type string against the synonym table.
// Unrecognized input defaults to "apartment".
func PropertyType(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := propertyTypeTable[key]; ok {
		return t
	}
	return "apartment"
}

// Coordinates parses a lat/lng pair. Both components must independently
// parse as finite numbers or the whole pair is dropped.
func Coordinates(lat, lng string) *models.Coordinates {
	latVal, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lngVal, errLng := strconv.ParseFloat(strings.TrimSpace(lng), 64)

	if errLat != nil || errLng != nil {
		return nil
	}
	if math.IsNaN(latVal) || math.IsInf(latVal, 0) || math.IsNaN(lngVal) || math.IsInf(lngVal, 0) {
		return nil
	}
	return &models.Coordinates{Lat: latVal, Lng: lngVal}
}

// Slugify creates a URL-friendly slug: lowercase, non-word characters
// stripped, whitespace/underscore/hyphen runs collapsed to a single hyphen,
// no leading or trailing hyphen. Idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripRegexp.ReplaceAllString(s, "")
	s = slugRunsRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Count parses a non-negative integer count (bedrooms, bathrooms).
// Unparseable or negative input defaults to 0.
func Count(raw string) int {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

// Size parses a non-negative size in square metres, defaulting to 0.
func Size(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Distance parses an optional distance value. Non-numeric or non-positive
// input yields nil rather than zero.
func Distance(raw string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// StripMarkup removes source markup and reference codes from a feed
// description and collapses the remaining whitespace.
func StripMarkup(s string) string {
	s = tagRegexp.ReplaceAllString(s, " ")
	s = refCodeRegexp.ReplaceAllString(s, "")
	s = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&quot;", `"`, "&#39;", "'").Replace(s)
	return CleanText(s)
}

// CleanText strips leading/trailing whitespace and collapses internal
// whitespace.
func CleanText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// FormatPrice renders a price for display, e.g. "€274,900".
func FormatPrice(price float64) string {
	n := int64(price + 0.5)
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	b.WriteString("€")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(",")
		}
	}
	return b.String()
}

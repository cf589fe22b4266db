package utils

import (
	"regexp"
	"strings"
)

var (
	postalCodeRe   = regexp.MustCompile(`\d{5,6}`)
	regionWordsRe  = regexp.MustCompile(`(?i)\b(maharashtra|mh|india|in)\b`)
	placeTypesRe   = regexp.MustCompile(`(?i)\b(district|dist|taluka|tal|village|vil|city|town)\b`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// NormalizeAreaName collapses address variants to a canonical area name,
// e.g. "Pandharpur Solapur 413304" and "Solapur Pandharpur Maharashtra"
// both normalize to "Pandharpur".
func NormalizeAreaName(areaName string) string {
	if areaName == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(areaName))
	normalized = postalCodeRe.ReplaceAllString(normalized, "")
	normalized = regionWordsRe.ReplaceAllString(normalized, "")
	normalized = placeTypesRe.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(whitespaceRe.ReplaceAllString(normalized, " "))

	var words []string
	for _, w := range strings.Split(normalized, " ") {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return areaName // nothing left, keep the original
	}

	// The first significant word is usually the main area name.
	main := words[0]
	return strings.ToUpper(main[:1]) + main[1:]
}

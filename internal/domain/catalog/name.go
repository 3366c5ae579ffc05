package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerTurkish = cases.Lower(language.Turkish)

// NormalizeName canonicalizes a product name for matching. Orders reference
// products by free-text name rather than by ID, so every join point (intake,
// returns, analytics) must funnel through this one function. Turkish casing
// rules apply: "LIMON" and "lımon" fold differently than in plain ASCII.
func NormalizeName(name string) string {
	return lowerTurkish.String(strings.TrimSpace(name))
}

// NamesEqual reports whether two product names refer to the same product.
func NamesEqual(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

package similarity

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Score returns how alike original and corrected are, from 0 to 100 rounded to two
// decimals, using the longest-matching-blocks ratio over the trimmed strings.
//
// Identical non-empty inputs score 100; inputs sharing no characters score 0.
// The ratio is not guaranteed to be symmetric.
func Score(original, corrected string) float64 {
	a := chars(strings.TrimSpace(original))
	b := chars(strings.TrimSpace(corrected))

	ratio := difflib.NewMatcher(a, b).Ratio()

	return math.Round(ratio*100*100) / 100
}

// splits s into one element per character
func chars(s string) []string {
	return strings.Split(s, "")
}

package suggest

import (
	"regexp"
	"strings"
)

// outputs made of nothing but syntax noise
var garbagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[{}()\[\]<>"'\\\s]*$`),
	regexp.MustCompile(`^(?:\(x, y\)[\s,]*)+$`),
	regexp.MustCompile(`^\(x, y\)+$`),
	regexp.MustCompile(`^[\s{}\[\]();:"'\\]{10,}$`),
	regexp.MustCompile(`^\s*$`),
}

const minDistinctRunes = 6

// reports whether a completion carries no usable code
func IsGarbage(text string) bool {
	text = strings.TrimSpace(text)

	for _, p := range garbagePatterns {
		if p.MatchString(text) {
			return true
		}
	}

	return distinctRunes(text) < minDistinctRunes
}

func distinctRunes(s string) int {
	seen := make(map[rune]struct{})
	for _, r := range s {
		seen[r] = struct{}{}
	}

	return len(seen)
}

// Package langdetect guesses a snippet's language from a handful of textual markers.
// It is a best-effort heuristic, not a parser; misclassification is expected.
package langdetect

import (
	"regexp"
	"strings"
)

const (
	Python    = "python"
	Java      = "java"
	C         = "c"
	CPP       = "cpp"
	Plaintext = "plaintext"
)

var (
	pythonImport    = regexp.MustCompile(`(?m)^\s*import\s+\w+`)
	commentPrefixes = []string{"#", "//", "/*", "*", "*/"}

	// every line boundary a snippet pasted from any editor may carry, not just \n
	lineBreak = regexp.MustCompile("\r\n|[\n\r\v\f\x1c-\x1e\u0085\u2028\u2029]")
)

// Detect classifies code into one of the fixed tags. Same input, same tag.
func Detect(code string) string {
	code = strings.TrimSpace(code)

	if !hasCodeLine(code) {
		return Plaintext
	}

	if strings.Contains(code, "#include") {
		if strings.Contains(code, "std::") || strings.Contains(code, "cout") {
			return CPP
		}

		return C
	}

	if strings.Contains(code, "import java") || strings.Contains(code, "System.out.println") {
		return Java
	}

	if strings.Contains(code, "def ") || pythonImport.MatchString(code) {
		return Python
	}

	return Plaintext
}

// reports whether any line is neither blank nor a comment
func hasCodeLine(code string) bool {
	for _, line := range lineBreak.Split(code, -1) {
		line = strings.TrimSpace(line)
		if line == "" || isComment(line) {
			continue
		}

		return true
	}

	return false
}

func isComment(line string) bool {
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}

	return false
}

package syntaxcheck

import (
	"regexp"
	"strings"
)

var javaPublicClass = regexp.MustCompile(`(?m)^\s*public\s+(?:(?:final|abstract|sealed)\s+)*(?:class|interface|enum|record)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

// returns the fixed language → toolchain table
func DefaultToolchains() map[string]Toolchain {
	return map[string]Toolchain{
		"python": {
			Language:  "python",
			Extension: ".py",
			Command:   "python3",
			Args: func(_, source string) []string {
				return []string{"-m", "py_compile", source}
			},
		},
		"java": {
			Language:  "java",
			Extension: ".java",
			Command:   "javac",
			Args: func(workspace, source string) []string {
				// keep generated .class files inside the workspace
				return []string{"-d", workspace, source}
			},
			FileName: javaFileName,
		},
		"c": {
			Language:  "c",
			Extension: ".c",
			Command:   "gcc",
			Args: func(_, source string) []string {
				return []string{"-fsyntax-only", source}
			},
		},
		"cpp": {
			Language:  "cpp",
			Extension: ".cpp",
			Command:   "g++",
			Args: func(_, source string) []string {
				return []string{"-fsyntax-only", source}
			},
		},
	}
}

// names the file after the first public top-level type, or "" for a random name
func javaFileName(code string) string {
	m := javaPublicClass.FindStringSubmatch(code)
	if m == nil {
		return ""
	}

	return m[1] + ".java"
}

// lowercases and trims a language tag; "c++" is accepted as cpp
func NormalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))

	if lang == "c++" {
		return "cpp"
	}

	return lang
}

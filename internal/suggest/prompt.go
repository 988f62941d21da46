package suggest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const promptTemplate = `You are a senior code reviewer and fixer.

Analyze the following {language} code:
- Fix all syntax and logical errors
- Return only the corrected code
- **Add explanation as comments using the correct syntax for {language}**

For example:
- Use ` + "`# comment`" + ` for Python
- Use ` + "`// comment`" + ` for C, C++, Java, JavaScript

Do not include any markdown. Just return a valid {language} code file with comments explaining the fixes.

### Original {language} Code:
{code}

### Corrected and Commented Code:
`

// fills the reviewer template; code is expected to be trimmed already
func buildPrompt(code, lang string) string {
	// casers keep state between calls
	name := cases.Title(language.Und).String(strings.TrimSpace(lang))

	return strings.NewReplacer("{language}", name, "{code}", code).Replace(promptTemplate)
}

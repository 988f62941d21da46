package syntaxcheck

import (
	"errors"
	"fmt"
	"time"
)

// the single diagnostic returned for languages without a toolchain
const UnsupportedLanguage = "Unsupported language"

var (
	// the toolchain binary is not installed on this host
	ErrCheckerUnavailable = errors.New("syntax checker not installed")

	// the toolchain did not finish within the configured timeout
	ErrCheckTimeout = errors.New("syntax check timed out")

	// the toolchain exited non-zero without writing any diagnostics
	ErrCheckFailed = errors.New("syntax checker failed")
)

// describes how one language is checked
type Toolchain struct {
	Language  string
	Extension string
	Command   string

	// builds the argument list for a source file inside the private workspace
	Args func(workspace, source string) []string

	// optional: derives the source file name from the code (javac wants File.java == public class File)
	FileName func(code string) string
}

// outcome of a single syntax check
type Result struct {
	Language    string        `json:"language"`
	Diagnostics []string      `json:"diagnostics"`
	Tool        string        `json:"tool,omitempty"`
	Duration    time.Duration `json:"duration"`
	Unsupported bool          `json:"unsupported,omitempty"`
}

// wraps one of the sentinel errors with the invocation that produced it
type CheckError struct {
	Language string
	Tool     string
	Kind     error
	Cause    error
}

func (e *CheckError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s (%s): %v", e.Tool, e.Language, e.Kind)
	}

	return fmt.Sprintf("%s (%s): %v: %v", e.Tool, e.Language, e.Kind, e.Cause)
}

func (e *CheckError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

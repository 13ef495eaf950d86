package reconcile

import (
	"strings"
	"unicode/utf8"
)

// Config holds the run defaults that command-line flags may override.
type Config struct {
	// Delimiter is the single-character field delimiter.
	Delimiter string `mapstructure:"delimiter" default:","`
	// Header is 1 when input files carry a header row, 0 otherwise.
	Header int `mapstructure:"header" default:"1"`
	// Tolerance is the default numeric tolerance.
	Tolerance float64 `mapstructure:"tolerance" default:"0"`
	// Prefix is the default output file prefix.
	Prefix string `mapstructure:"prefix" default:"reconcile"`
}

// ParseDelimiter validates a delimiter argument and returns its rune.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` || strings.EqualFold(s, "tab") {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, UsageError(nil, "delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, UsageError(nil, "invalid delimiter %q", s)
	}
	return r, nil
}

// ParseHeaderFlag validates the header flag, which must be 1 or 0.
func ParseHeaderFlag(v int) (bool, error) {
	switch v {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, UsageError(nil, "header flag must be 1 or 0, got %d", v)
	}
}

// Validate checks the options that do not depend on file contents.
func (o Options) Validate() error {
	if strings.TrimSpace(o.KeySpec) == "" {
		return UsageError(nil, "missing required key specification (-k)")
	}
	if o.Tolerance < 0 {
		return UsageError(nil, "tolerance must be non-negative, got %g", o.Tolerance)
	}
	if o.Delimiter == 0 || o.Delimiter == '"' || o.Delimiter == '\r' || o.Delimiter == '\n' || o.Delimiter == utf8.RuneError {
		return UsageError(nil, "invalid delimiter %q", o.Delimiter)
	}
	return nil
}

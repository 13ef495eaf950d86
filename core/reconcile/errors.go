package reconcile

import (
	"errors"
	"fmt"
)

// Process exit codes carried by ConfigError.
const (
	// ExitUsage covers bad or missing arguments and unreadable input files.
	ExitUsage = 2
	// ExitKeySpec covers key specifications that cannot be resolved.
	ExitKeySpec = 3
)

var (
	// ErrKeyNotFound is wrapped when a key column name is absent from the source header.
	ErrKeyNotFound = errors.New("key column not found")
	// ErrInvalidKeyIndex is wrapped when a headerless key token is not a positive integer.
	ErrInvalidKeyIndex = errors.New("invalid key column index")
	// ErrEmptyKeySpec is wrapped when the key specification has no usable tokens.
	ErrEmptyKeySpec = errors.New("empty key specification")
)

// ConfigError is a fatal configuration problem detected before ingestion.
// No report is produced when one is returned.
type ConfigError struct {
	// Code is the process exit code for this error.
	Code int
	// Message is the diagnostic shown to the user.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UsageError returns a ConfigError with ExitUsage.
func UsageError(err error, format string, args ...any) *ConfigError {
	return &ConfigError{Code: ExitUsage, Message: fmt.Sprintf(format, args...), Err: err}
}

// KeySpecError returns a ConfigError with ExitKeySpec.
func KeySpecError(err error, format string, args ...any) *ConfigError {
	return &ConfigError{Code: ExitKeySpec, Message: fmt.Sprintf(format, args...), Err: err}
}

// ExitCode maps err to a process exit code: 0 for nil, the ConfigError code
// when err wraps one, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Code
	}
	return 1
}

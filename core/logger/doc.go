// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for both the command-line run and the
// HTTP server, writing to stderr so that reports printed on stdout stay clean.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (machine readable) or console (human readable)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Reconciliation finished", zap.Int("mismatches", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger

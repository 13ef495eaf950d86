package reconcile

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Reconcile runs one reconciliation over two already-opened inputs.
//
// Both headers are read first, then the key specification is resolved against
// the source header; a ConfigError at that point aborts before any row is
// ingested. Each input is then read exactly once. logger may be nil.
func Reconcile(source, target io.Reader, opts Options, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	srcReader := newTableReader(source, opts.SourceName, opts.Delimiter, logger)
	tgtReader := newTableReader(target, opts.TargetName, opts.Delimiter, logger)

	srcSchema, err := loadSchema(srcReader, opts.HasHeader)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", opts.SourceName, err)
	}
	tgtSchema, err := loadSchema(tgtReader, opts.HasHeader)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", opts.TargetName, err)
	}

	keys, err := ResolveKeys(opts.KeySpec, opts.HasHeader, srcSchema)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved key columns", zap.String("spec", opts.KeySpec), zap.Stringer("positions", keys))

	srcSet, err := ingest(srcReader, keys)
	if err != nil {
		return nil, fmt.Errorf("ingest source %s: %w", opts.SourceName, err)
	}
	tgtSet, err := ingest(tgtReader, keys)
	if err != nil {
		return nil, fmt.Errorf("ingest target %s: %w", opts.TargetName, err)
	}
	logger.Debug("Ingested inputs",
		zap.Int("source_rows", srcSet.Rows),
		zap.Int("source_keys", srcSet.Len()),
		zap.Int("target_rows", tgtSet.Rows),
		zap.Int("target_keys", tgtSet.Len()),
	)

	if !opts.HasHeader {
		srcSchema.Columns = srcSet.MaxWidth
		tgtSchema.Columns = tgtSet.MaxWidth
	}

	outcomes := Compare(srcSet, tgtSet, keys, opts.Tolerance)
	return buildReport(opts, keys, srcSchema, tgtSchema, srcSet, tgtSet, outcomes), nil
}

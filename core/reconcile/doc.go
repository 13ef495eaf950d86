// Package reconcile compares two delimited tabular files that are expected to
// hold the same logical records, identified by one or more key columns.
//
// A run reports keys present only in the source, keys present only in the
// target, keys repeated within either file, per-column value mismatches
// (with optional numeric tolerance) and schema-level differences.
//
// # Pipeline
//
// Reconcile drives five steps over two io.Readers:
//
//  1. Schema loading: the header row of each file (when present) becomes a
//     case-insensitive name index. Headerless files are measured by their
//     widest data row instead.
//
//  2. Key resolution: the key specification ("id,region" or "1,3") is
//     resolved once against the source header. The same positions are used
//     for the target.
//
//  3. Ingestion: each file is streamed once into an IngestedSet keyed by
//     CompositeKey. A repeated key keeps only its last row and counts every
//     occurrence.
//
//  4. Comparison: for keys present in both sets, every non-key column is
//     classified as Numeric or Textual and compared. Only inequalities are
//     kept.
//
//  5. Report assembly: missing, extra, duplicate and mismatch sets plus a
//     Summary, returned as a Report for downstream rendering.
//
// # Errors
//
// Configuration problems (bad key names, non-numeric headerless key indexes,
// invalid options) are returned as *ConfigError before any row is ingested.
// Irregular data such as short rows is tolerated and never aborts a run.
//
// # Usage
//
//	rep, err := reconcile.Reconcile(src, tgt, reconcile.Options{
//	    SourceName: "old.csv",
//	    TargetName: "new.csv",
//	    Delimiter:  ',',
//	    HasHeader:  true,
//	    KeySpec:    "id",
//	    Tolerance:  0.01,
//	}, logger)
package reconcile

// Package report renders a reconcile.Report into the file artifacts consumed
// downstream: CSV record sets, the schema-diff and summary text reports, and a
// SpreadsheetML overview workbook of the two text reports.
//
// Rendering happens fully in memory, so a run that fails before writing leaves
// no files. WriteFiles stages every artifact in a temporary file and renames
// the set into place only after all were written; a failure while staging
// removes the temporary files and keeps existing artifacts untouched.
package report

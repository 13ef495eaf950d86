package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"table-reconcile/core/reconcile"
)

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func keyCSV(keys []reconcile.CompositeKey) ([]byte, error) {
	rows := make([][]string, 0, len(keys)+1)
	rows = append(rows, []string{"key"})
	for _, k := range keys {
		rows = append(rows, []string{k.String()})
	}
	return writeCSV(rows)
}

func duplicateCSV(dups []reconcile.Duplicate) ([]byte, error) {
	rows := make([][]string, 0, len(dups)+1)
	rows = append(rows, []string{"key", "count"})
	for _, d := range dups {
		rows = append(rows, []string{d.Key.String(), strconv.Itoa(d.Count)})
	}
	return writeCSV(rows)
}

func mismatchCSV(mismatches []reconcile.Mismatch, hasHeader bool) ([]byte, error) {
	header := []string{"key", "column_index", "source_value", "target_value", "is_numeric", "diff"}
	if hasHeader {
		header = []string{"key", "column_index", "column_name", "source_value", "target_value", "is_numeric", "diff"}
	}

	rows := make([][]string, 0, len(mismatches)+1)
	rows = append(rows, header)
	for _, m := range mismatches {
		row := []string{m.Key.String(), strconv.Itoa(m.ColumnIndex)}
		if hasHeader {
			row = append(row, m.ColumnName)
		}
		row = append(row, m.SourceValue, m.TargetValue, FormatBool(m.IsNumeric()), FormatDiff(m.Diff))
		rows = append(rows, row)
	}
	return writeCSV(rows)
}

// FormatDiff renders a numeric difference with six significant digits, or ""
// when no difference was computed.
func FormatDiff(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'g', 6, 64)
}

// FormatBool renders flags as 1 or 0.
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

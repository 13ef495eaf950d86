package report

import (
	"strconv"
	"strings"

	"table-reconcile/core/reconcile"
)

// SummaryLines renders the summary as label:value lines, counts first and the
// echoed configuration after.
func SummaryLines(s reconcile.Summary) []string {
	delimiter := s.Delimiter
	if delimiter == "\t" {
		delimiter = `\t`
	}

	pairs := [][2]string{
		{"source_rows", strconv.Itoa(s.SourceRows)},
		{"target_rows", strconv.Itoa(s.TargetRows)},
		{"source_unique_keys", strconv.Itoa(s.SourceKeys)},
		{"target_unique_keys", strconv.Itoa(s.TargetKeys)},
		{"missing_in_target", strconv.Itoa(s.MissingInTarget)},
		{"extra_in_target", strconv.Itoa(s.ExtraInTarget)},
		{"duplicate_keys_source", strconv.Itoa(s.DuplicatesSource)},
		{"duplicate_keys_target", strconv.Itoa(s.DuplicatesTarget)},
		{"common_keys", strconv.Itoa(s.CommonKeys)},
		{"mismatched_values", strconv.Itoa(s.Mismatches)},
		{"source_file", s.SourceFile},
		{"target_file", s.TargetFile},
		{"delimiter", delimiter},
		{"header", FormatBool(s.HasHeader)},
		{"key_spec", s.KeySpec},
		{"key_columns", s.KeyColumns.String()},
		{"tolerance", strconv.FormatFloat(s.Tolerance, 'g', -1, 64)},
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = p[0] + ":" + p[1]
	}
	return lines
}

func textLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

package reconcile

import "fmt"

// MissingHeader marks a header position that one file does not have.
const MissingHeader = "<missing>"

// DiffSchemas returns informational notes comparing the two schemas.
// It never fails; an identical pair yields a single "match" statement.
func DiffSchemas(source, target SchemaInfo, hasHeader bool) []string {
	if !hasHeader {
		if source.Columns != target.Columns {
			return []string{fmt.Sprintf("max row width differs: source=%d target=%d", source.Columns, target.Columns)}
		}
		return []string{fmt.Sprintf("row widths match: %d", source.Columns)}
	}

	var notes []string
	if source.Columns != target.Columns {
		notes = append(notes, fmt.Sprintf("column count differs: source=%d target=%d", source.Columns, target.Columns))
	}

	width := max(source.Columns, target.Columns)
	for pos := 1; pos <= width; pos++ {
		sh, ok := source.Header(pos)
		if !ok {
			sh = MissingHeader
		}
		th, ok := target.Header(pos)
		if !ok {
			th = MissingHeader
		}
		if sh != th {
			notes = append(notes, fmt.Sprintf("column %d name differs: source=%s target=%s", pos, sh, th))
		}
	}

	if len(notes) == 0 {
		notes = append(notes, "headers match")
	}
	return notes
}

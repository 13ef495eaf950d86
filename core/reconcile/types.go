package reconcile

import (
	"strconv"
	"strings"
)

// Record is the trimmed field values of a single row.
type Record []string

// Field returns the value at the 1-based position pos, or "" when the record
// is too short.
func (r Record) Field(pos int) string {
	if pos < 1 || pos > len(r) {
		return ""
	}
	return r[pos-1]
}

// KeySpec is the ordered list of 1-based column positions forming a key.
type KeySpec []int

// Contains reports whether pos is one of the key columns.
func (k KeySpec) Contains(pos int) bool {
	for _, p := range k {
		if p == pos {
			return true
		}
	}
	return false
}

// String renders the positions as a comma separated list, e.g. "1,3".
func (k KeySpec) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// KeyDisplaySeparator joins key parts in reports.
const KeyDisplaySeparator = "|"

// CompositeKey identifies a record within one file.
//
// Each part is length-prefixed ("<len>:<value>") so two different part lists
// can never encode to the same key, whatever the field content.
type CompositeKey string

// NewCompositeKey encodes parts into a CompositeKey.
func NewCompositeKey(parts ...string) CompositeKey {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return CompositeKey(b.String())
}

// KeyOf builds the composite key of rec for the given key columns.
// Positions beyond the end of the record contribute an empty part.
func KeyOf(rec Record, spec KeySpec) CompositeKey {
	parts := make([]string, len(spec))
	for i, pos := range spec {
		parts[i] = rec.Field(pos)
	}
	return NewCompositeKey(parts...)
}

// Parts decodes the key back into its component values.
func (k CompositeKey) Parts() []string {
	s := string(k)
	var parts []string
	for len(s) > 0 {
		colon := strings.IndexByte(s, ':')
		if colon < 0 {
			break
		}
		n, err := strconv.Atoi(s[:colon])
		if err != nil || colon+1+n > len(s) {
			break
		}
		parts = append(parts, s[colon+1:colon+1+n])
		s = s[colon+1+n:]
	}
	return parts
}

// displayEscaper escapes the separator inside parts of multi-column keys.
var displayEscaper = strings.NewReplacer(`\`, `\\`, KeyDisplaySeparator, `\`+KeyDisplaySeparator)

// String returns the display form of the key. A single-column key is shown
// as-is; parts of a multi-column key have `\` and `|` backslash-escaped before
// joining, so distinct keys never display the same.
func (k CompositeKey) String() string {
	parts := k.Parts()
	if len(parts) == 1 {
		return parts[0]
	}
	for i, p := range parts {
		parts[i] = displayEscaper.Replace(p)
	}
	return strings.Join(parts, KeyDisplaySeparator)
}

// MarshalText renders the display form, so keys read naturally in JSON.
func (k CompositeKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Mode is the comparison mode chosen for a pair of values.
type Mode int

const (
	// Textual pairs are equal iff byte-identical.
	Textual Mode = iota
	// Numeric pairs are equal iff their difference is within tolerance.
	Numeric
)

func (m Mode) String() string {
	if m == Numeric {
		return "numeric"
	}
	return "textual"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// SchemaInfo describes the shape of one file.
type SchemaInfo struct {
	// Headers is the trimmed header row; nil for headerless files.
	Headers []string `json:"headers,omitempty"`

	// Columns is the header width, or the widest data row when headerless.
	Columns int `json:"columns"`

	index map[string]int
}

// Lookup resolves a header name case-insensitively to its 1-based position.
func (s SchemaInfo) Lookup(name string) (int, bool) {
	pos, ok := s.index[strings.ToLower(strings.TrimSpace(name))]
	return pos, ok
}

// Header returns the header name at the 1-based position pos.
func (s SchemaInfo) Header(pos int) (string, bool) {
	if pos < 1 || pos > len(s.Headers) {
		return "", false
	}
	return s.Headers[pos-1], true
}

// Options configures a single reconciliation run.
type Options struct {
	// SourceName and TargetName are echoed in the summary.
	SourceName string
	TargetName string

	// Delimiter separates fields in both input files.
	Delimiter rune

	// HasHeader declares that the first line of each file is a header row.
	HasHeader bool

	// KeySpec is the raw comma separated key specification.
	KeySpec string

	// Tolerance is the maximum absolute difference for numeric equality.
	Tolerance float64
}

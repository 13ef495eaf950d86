package reconcile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// tableReader reads trimmed rows from one delimited file, one physical line
// at a time. Quoting never spans lines, so a stray quote cannot swallow the
// rows after it.
type tableReader struct {
	br        *bufio.Reader
	delimiter rune
	name      string
	logger    *zap.Logger
	line      int
}

func newTableReader(r io.Reader, name string, delimiter rune, logger *zap.Logger) *tableReader {
	return &tableReader{br: bufio.NewReader(r), delimiter: delimiter, name: name, logger: logger}
}

// next returns the next non-blank row with every field trimmed. The UTF-8 BOM
// is stripped from the first line whether or not it is a header. It returns
// io.EOF at end of input.
func (t *tableReader) next() (Record, error) {
	for {
		raw, err := t.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read %s line %d: %w", t.name, t.line+1, err)
		}
		if raw == "" && err == io.EOF {
			return nil, io.EOF
		}
		t.line++

		text := strings.TrimRight(raw, "\r\n")
		if t.line == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		if text == "" {
			continue
		}

		fields := t.split(text)
		rec := make(Record, len(fields))
		for i, f := range fields {
			rec[i] = strings.TrimSpace(f)
		}
		return rec, nil
	}
}

// split parses one line with standard quoting. Lines with broken quoting are
// split on the bare delimiter instead, keeping the quote characters.
func (t *tableReader) split(text string) []string {
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = t.delimiter
	cr.FieldsPerRecord = -1 // rows may vary in width
	fields, err := cr.Read()
	if err == nil {
		return fields
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		t.logger.Warn("Malformed quoting, splitting on delimiter",
			zap.String("file", t.name),
			zap.Int("line", t.line),
			zap.Error(parseErr.Err),
		)
	}
	return strings.Split(text, string(t.delimiter))
}

// loadSchema consumes the header row when hasHeader is set and returns the
// file's schema. Headerless files get an empty schema whose Columns is filled
// in by ingestion.
func loadSchema(t *tableReader, hasHeader bool) (SchemaInfo, error) {
	if !hasHeader {
		return SchemaInfo{}, nil
	}

	hdr, err := t.next()
	if err == io.EOF {
		t.logger.Warn("File has no header row", zap.String("file", t.name))
		return newSchema(nil), nil
	}
	if err != nil {
		return SchemaInfo{}, fmt.Errorf("read header: %w", err)
	}
	return newSchema(hdr), nil
}

// newSchema builds a SchemaInfo with a lower-cased name index. When a name
// repeats, the first position wins.
func newSchema(headers []string) SchemaInfo {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.ToLower(h)
		if _, exists := index[name]; !exists {
			index[name] = i + 1
		}
	}
	if headers == nil {
		headers = []string{}
	}
	return SchemaInfo{Headers: headers, Columns: len(headers), index: index}
}

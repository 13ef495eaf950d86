package reconcile

import (
	"strconv"
	"strings"
)

// ResolveKeys turns a comma separated key specification into column positions.
//
// With headers, each token is a column name looked up case-insensitively in
// the source schema. Without headers, each token must be a positive 1-based
// index. Resolution happens once, against the source; the same positions are
// applied to the target.
func ResolveKeys(spec string, hasHeader bool, source SchemaInfo) (KeySpec, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, KeySpecError(ErrEmptyKeySpec, "no key columns in %q", spec)
	}
	tokens := strings.Split(spec, ",")
	for i, tok := range tokens {
		tokens[i] = strings.TrimSpace(tok)
		if tokens[i] == "" {
			return nil, KeySpecError(ErrEmptyKeySpec, "empty key column at position %d in %q", i+1, spec)
		}
	}

	keys := make(KeySpec, 0, len(tokens))
	for _, tok := range tokens {
		if hasHeader {
			pos, ok := source.Lookup(tok)
			if !ok {
				return nil, KeySpecError(ErrKeyNotFound, "key column %q not found in source header", tok)
			}
			keys = append(keys, pos)
			continue
		}

		pos, err := strconv.Atoi(tok)
		if err != nil || pos < 1 {
			return nil, KeySpecError(ErrInvalidKeyIndex, "key column %q must be a positive column number when headers are absent", tok)
		}
		keys = append(keys, pos)
	}
	return keys, nil
}

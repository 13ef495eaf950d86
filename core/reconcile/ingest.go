package reconcile

import (
	"io"
)

// Entry is the stored state for one composite key.
type Entry struct {
	// Record is the last row seen for the key.
	Record Record
	// Count is how many rows carried the key; always at least 1.
	Count int
}

// IngestedSet is the keyed content of one file.
type IngestedSet struct {
	entries map[CompositeKey]*Entry
	order   []CompositeKey

	// Rows is the number of data rows read.
	Rows int
	// MaxWidth is the widest data row seen.
	MaxWidth int
}

// NewIngestedSet returns an empty set.
func NewIngestedSet() *IngestedSet {
	return &IngestedSet{entries: make(map[CompositeKey]*Entry)}
}

// Add stores rec under key. A repeated key increments the count and replaces
// the stored record, so the last row wins.
func (s *IngestedSet) Add(key CompositeKey, rec Record) {
	s.Rows++
	if len(rec) > s.MaxWidth {
		s.MaxWidth = len(rec)
	}

	if e, ok := s.entries[key]; ok {
		e.Count++
		e.Record = rec
		return
	}
	s.entries[key] = &Entry{Record: rec, Count: 1}
	s.order = append(s.order, key)
}

// Get returns the entry for key.
func (s *IngestedSet) Get(key CompositeKey) (*Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Has reports whether key was ingested.
func (s *IngestedSet) Has(key CompositeKey) bool {
	_, ok := s.entries[key]
	return ok
}

// Keys returns the distinct keys in first-seen order.
func (s *IngestedSet) Keys() []CompositeKey {
	return s.order
}

// Len returns the number of distinct keys.
func (s *IngestedSet) Len() int {
	return len(s.order)
}

// ingest reads every remaining row of t into a new IngestedSet.
// Malformed and short rows are tolerated; only I/O errors are returned.
func ingest(t *tableReader, keys KeySpec) (*IngestedSet, error) {
	set := NewIngestedSet()
	for {
		rec, err := t.next()
		if err == io.EOF {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		set.Add(KeyOf(rec, keys), rec)
	}
}

package reconcile

// Duplicate is a key that occurred more than once in one file.
type Duplicate struct {
	Key   CompositeKey `json:"key"`
	Count int          `json:"count"`
}

// Mismatch is a reported value difference, enriched with the column name.
type Mismatch struct {
	Key         CompositeKey `json:"key"`
	ColumnIndex int          `json:"column_index"`
	ColumnName  string       `json:"column_name,omitempty"`
	SourceValue string       `json:"source_value"`
	TargetValue string       `json:"target_value"`
	Mode        Mode         `json:"mode"`
	Diff        *float64     `json:"diff,omitempty"`
}

// IsNumeric reports whether the pair was compared numerically.
func (m Mismatch) IsNumeric() bool {
	return m.Mode == Numeric
}

// Summary holds aggregate counts and the echoed run configuration.
type Summary struct {
	SourceFile string  `json:"source_file"`
	TargetFile string  `json:"target_file"`
	Delimiter  string  `json:"delimiter"`
	HasHeader  bool    `json:"has_header"`
	KeySpec    string  `json:"key_spec"`
	KeyColumns KeySpec `json:"key_columns"`
	Tolerance  float64 `json:"tolerance"`

	SourceRows       int `json:"source_rows"`
	TargetRows       int `json:"target_rows"`
	SourceKeys       int `json:"source_keys"`
	TargetKeys       int `json:"target_keys"`
	MissingInTarget  int `json:"missing_in_target"`
	ExtraInTarget    int `json:"extra_in_target"`
	DuplicatesSource int `json:"duplicates_source"`
	DuplicatesTarget int `json:"duplicates_target"`
	CommonKeys       int `json:"common_keys"`
	Mismatches       int `json:"mismatches"`
}

// Report is the complete structured output of one run.
type Report struct {
	HasHeader        bool           `json:"has_header"`
	SourceSchema     SchemaInfo     `json:"source_schema"`
	TargetSchema     SchemaInfo     `json:"target_schema"`
	MissingInTarget  []CompositeKey `json:"missing_in_target"`
	ExtraInTarget    []CompositeKey `json:"extra_in_target"`
	DuplicatesSource []Duplicate    `json:"duplicates_source"`
	DuplicatesTarget []Duplicate    `json:"duplicates_target"`
	Mismatches       []Mismatch     `json:"mismatches"`
	SchemaNotes      []string       `json:"schema_notes"`
	Summary          Summary        `json:"summary"`
}

// buildReport assembles the report from ingested sets and comparison outcomes.
func buildReport(opts Options, keys KeySpec, srcSchema, tgtSchema SchemaInfo, source, target *IngestedSet, outcomes []Outcome) *Report {
	rep := &Report{
		HasHeader:        opts.HasHeader,
		SourceSchema:     srcSchema,
		TargetSchema:     tgtSchema,
		MissingInTarget:  []CompositeKey{},
		ExtraInTarget:    []CompositeKey{},
		DuplicatesSource: duplicates(source),
		DuplicatesTarget: duplicates(target),
		Mismatches:       make([]Mismatch, 0, len(outcomes)),
		SchemaNotes:      DiffSchemas(srcSchema, tgtSchema, opts.HasHeader),
	}

	common := 0
	for _, key := range source.Keys() {
		if target.Has(key) {
			common++
		} else {
			rep.MissingInTarget = append(rep.MissingInTarget, key)
		}
	}
	for _, key := range target.Keys() {
		if !source.Has(key) {
			rep.ExtraInTarget = append(rep.ExtraInTarget, key)
		}
	}

	for _, o := range outcomes {
		m := Mismatch{
			Key:         o.Key,
			ColumnIndex: o.Column,
			SourceValue: o.Source,
			TargetValue: o.Target,
			Mode:        o.Mode,
		}
		if opts.HasHeader {
			m.ColumnName = columnName(srcSchema, tgtSchema, o.Column)
		}
		if o.HasDiff {
			d := o.Diff
			m.Diff = &d
		}
		rep.Mismatches = append(rep.Mismatches, m)
	}

	rep.Summary = Summary{
		SourceFile:       opts.SourceName,
		TargetFile:       opts.TargetName,
		Delimiter:        string(opts.Delimiter),
		HasHeader:        opts.HasHeader,
		KeySpec:          opts.KeySpec,
		KeyColumns:       keys,
		Tolerance:        opts.Tolerance,
		SourceRows:       source.Rows,
		TargetRows:       target.Rows,
		SourceKeys:       source.Len(),
		TargetKeys:       target.Len(),
		MissingInTarget:  len(rep.MissingInTarget),
		ExtraInTarget:    len(rep.ExtraInTarget),
		DuplicatesSource: len(rep.DuplicatesSource),
		DuplicatesTarget: len(rep.DuplicatesTarget),
		CommonKeys:       common,
		Mismatches:       len(rep.Mismatches),
	}
	return rep
}

func duplicates(set *IngestedSet) []Duplicate {
	dups := []Duplicate{}
	for _, key := range set.Keys() {
		if e, _ := set.Get(key); e.Count > 1 {
			dups = append(dups, Duplicate{Key: key, Count: e.Count})
		}
	}
	return dups
}

// columnName prefers the source header and falls back to the target's.
func columnName(source, target SchemaInfo, pos int) string {
	if name, ok := source.Header(pos); ok {
		return name
	}
	name, _ := target.Header(pos)
	return name
}

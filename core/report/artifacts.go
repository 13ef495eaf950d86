package report

import (
	"fmt"
	"os"
	"path/filepath"

	"table-reconcile/core/reconcile"
)

// Artifact suffixes appended to the output prefix.
const (
	SuffixMissing          = "_missing_in_target.csv"
	SuffixExtra            = "_extra_in_target.csv"
	SuffixDuplicatesSource = "_duplicates_source.csv"
	SuffixDuplicatesTarget = "_duplicates_target.csv"
	SuffixMismatches       = "_mismatched_values.csv"
	SuffixSchemaDiff       = "_schema_diff.txt"
	SuffixSummary          = "_summary.txt"
	SuffixOverview         = "_overview.xml"
)

// Artifact is one rendered output file.
type Artifact struct {
	// Path is the output path: prefix plus suffix.
	Path        string
	ContentType string
	Data        []byte
}

// Name returns the file name without directories.
func (a Artifact) Name() string {
	return filepath.Base(a.Path)
}

// Render produces every artifact for rep under the given prefix.
func Render(rep *reconcile.Report, prefix string) ([]Artifact, error) {
	if prefix == "" {
		return nil, fmt.Errorf("output prefix must not be empty")
	}

	missing, err := keyCSV(rep.MissingInTarget)
	if err != nil {
		return nil, fmt.Errorf("render missing keys: %w", err)
	}
	extra, err := keyCSV(rep.ExtraInTarget)
	if err != nil {
		return nil, fmt.Errorf("render extra keys: %w", err)
	}
	dupSource, err := duplicateCSV(rep.DuplicatesSource)
	if err != nil {
		return nil, fmt.Errorf("render source duplicates: %w", err)
	}
	dupTarget, err := duplicateCSV(rep.DuplicatesTarget)
	if err != nil {
		return nil, fmt.Errorf("render target duplicates: %w", err)
	}
	mismatches, err := mismatchCSV(rep.Mismatches, rep.HasHeader)
	if err != nil {
		return nil, fmt.Errorf("render mismatches: %w", err)
	}

	schemaLines := rep.SchemaNotes
	summaryLines := SummaryLines(rep.Summary)

	overview, err := Overview([]Sheet{
		{Name: "Schema Diff", Lines: schemaLines},
		{Name: "Summary", Lines: summaryLines},
	})
	if err != nil {
		return nil, fmt.Errorf("render overview: %w", err)
	}

	return []Artifact{
		{Path: prefix + SuffixMissing, ContentType: "text/csv", Data: missing},
		{Path: prefix + SuffixExtra, ContentType: "text/csv", Data: extra},
		{Path: prefix + SuffixDuplicatesSource, ContentType: "text/csv", Data: dupSource},
		{Path: prefix + SuffixDuplicatesTarget, ContentType: "text/csv", Data: dupTarget},
		{Path: prefix + SuffixMismatches, ContentType: "text/csv", Data: mismatches},
		{Path: prefix + SuffixSchemaDiff, ContentType: "text/plain", Data: textLines(schemaLines)},
		{Path: prefix + SuffixSummary, ContentType: "text/plain", Data: textLines(summaryLines)},
		{Path: prefix + SuffixOverview, ContentType: "application/xml", Data: overview},
	}, nil
}

// WriteFiles writes all artifacts, creating the prefix directory if needed.
// Every artifact is first staged in a temporary file next to its target; the
// staged files are renamed into place only once all of them were written, and
// removed on failure.
func WriteFiles(artifacts []Artifact) error {
	staged := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, a := range artifacts {
		tmp, err := stage(a)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	for i, a := range artifacts {
		if err := os.Rename(staged[i], a.Path); err != nil {
			cleanup()
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
	}
	return nil
}

func stage(a Artifact) (string, error) {
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", a.Path, err)
	}
	if _, err := f.Write(a.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", a.Path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", a.Path, err)
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", a.Path, err)
	}
	return f.Name(), nil
}

package reconciliation

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"table-reconcile/core/config"
	"table-reconcile/core/reconcile"
	"table-reconcile/core/storage"
)

// Job describes one reconciliation request.
// Nil optional fields fall back to the configured defaults.
type Job struct {
	Source    string   `json:"source" example:"old.csv"`
	Target    string   `json:"target" example:"new.csv"`
	Key       string   `json:"key" example:"id"`
	Delimiter string   `json:"delimiter,omitempty" example:","`
	Header    *int     `json:"header,omitempty" example:"1"`
	Tolerance *float64 `json:"tolerance,omitempty" example:"0.01"`
	// Prefix enables artifact files; no files are written when it is empty.
	Prefix string `json:"prefix,omitempty" example:"out/run"`
	Upload *bool  `json:"upload,omitempty"`
	Export *bool  `json:"export,omitempty"`
}

// WithDefaults fills unset fields from the configuration.
func (j Job) WithDefaults(cfg *config.Config) Job {
	if j.Delimiter == "" {
		j.Delimiter = cfg.Reconcile.Delimiter
	}
	if j.Header == nil {
		h := cfg.Reconcile.Header
		j.Header = &h
	}
	if j.Tolerance == nil {
		t := cfg.Reconcile.Tolerance
		j.Tolerance = &t
	}
	if j.Upload == nil {
		u := cfg.Storage.Upload
		j.Upload = &u
	}
	if j.Export == nil {
		e := cfg.Database.Export
		j.Export = &e
	}
	return j
}

// Options validates the job and converts it into engine options.
// It expects WithDefaults to have been applied.
func (j Job) Options() (reconcile.Options, error) {
	if strings.TrimSpace(j.Source) == "" {
		return reconcile.Options{}, reconcile.UsageError(nil, "missing required source file (-s)")
	}
	if strings.TrimSpace(j.Target) == "" {
		return reconcile.Options{}, reconcile.UsageError(nil, "missing required target file (-t)")
	}

	delimiter, err := reconcile.ParseDelimiter(j.Delimiter)
	if err != nil {
		return reconcile.Options{}, err
	}

	header := 1
	if j.Header != nil {
		header = *j.Header
	}
	hasHeader, err := reconcile.ParseHeaderFlag(header)
	if err != nil {
		return reconcile.Options{}, err
	}

	var tolerance float64
	if j.Tolerance != nil {
		tolerance = *j.Tolerance
	}

	if j.uploads() && j.Prefix == "" {
		return reconcile.Options{}, reconcile.UsageError(nil, "artifact upload requires an output prefix")
	}

	opts := reconcile.Options{
		SourceName: j.Source,
		TargetName: j.Target,
		Delimiter:  delimiter,
		HasHeader:  hasHeader,
		KeySpec:    j.Key,
		Tolerance:  tolerance,
	}
	return opts, opts.Validate()
}

func (j Job) uploads() bool {
	return j.Upload != nil && *j.Upload
}

func (j Job) exports() bool {
	return j.Export != nil && *j.Export
}

// flightKey identifies identical jobs for request collapsing.
func (j Job) flightKey() string {
	data, _ := json.Marshal(j)
	return string(data)
}

// WithinDir resolves the local source, target and prefix of the job under
// root. Absolute paths and paths escaping root are usage errors. Object
// storage locations are left as they are.
func (j Job) WithinDir(root string) (Job, error) {
	var err error
	if j.Source, err = confine(root, "source", j.Source); err != nil {
		return Job{}, err
	}
	if j.Target, err = confine(root, "target", j.Target); err != nil {
		return Job{}, err
	}
	if j.Prefix != "" {
		if j.Prefix, err = confine(root, "prefix", j.Prefix); err != nil {
			return Job{}, err
		}
	}
	return j, nil
}

func confine(root, field, p string) (string, error) {
	if p == "" || storage.IsURI(p) {
		return p, nil
	}
	if !filepath.IsLocal(p) {
		return "", reconcile.UsageError(nil, "%s %q must be a relative path inside the data directory", field, p)
	}
	return filepath.Join(root, p), nil
}

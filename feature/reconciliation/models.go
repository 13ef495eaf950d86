package reconciliation

import "time"

// Key kinds stored in reconcile_keys.
const (
	KindMissing         = "missing"
	KindExtra           = "extra"
	KindDuplicateSource = "duplicate_source"
	KindDuplicateTarget = "duplicate_target"
)

// RunRecord is one exported reconciliation run.
type RunRecord struct {
	ID               string    `gorm:"column:id;primaryKey;size:36"`
	SourceFile       string    `gorm:"column:source_file;size:1024"`
	TargetFile       string    `gorm:"column:target_file;size:1024"`
	Delimiter        string    `gorm:"column:delimiter;size:8"`
	HasHeader        bool      `gorm:"column:has_header"`
	KeySpec          string    `gorm:"column:key_spec;size:255"`
	KeyColumns       string    `gorm:"column:key_columns;size:255"`
	Tolerance        float64   `gorm:"column:tolerance"`
	SourceRows       int       `gorm:"column:source_rows"`
	TargetRows       int       `gorm:"column:target_rows"`
	MissingInTarget  int       `gorm:"column:missing_in_target"`
	ExtraInTarget    int       `gorm:"column:extra_in_target"`
	DuplicatesSource int       `gorm:"column:duplicates_source"`
	DuplicatesTarget int       `gorm:"column:duplicates_target"`
	CommonKeys       int       `gorm:"column:common_keys"`
	Mismatches       int       `gorm:"column:mismatches"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (RunRecord) TableName() string {
	return "reconcile_runs"
}

// KeyRecord is a key reported as missing, extra or duplicated.
type KeyRecord struct {
	ID    uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID string `gorm:"column:run_id;size:36;index"`
	Kind  string `gorm:"column:kind;size:32"`
	Key   string `gorm:"column:key_value"` // key is reserved in MySQL
	Count int    `gorm:"column:count"`
}

// TableName overrides the table name.
func (KeyRecord) TableName() string {
	return "reconcile_keys"
}

// MismatchRecord is one reported value difference.
type MismatchRecord struct {
	ID          uint     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID       string   `gorm:"column:run_id;size:36;index"`
	Key         string   `gorm:"column:key_value"`
	ColumnIndex int      `gorm:"column:column_index"`
	ColumnName  string   `gorm:"column:column_name;size:255"`
	SourceValue string   `gorm:"column:source_value"`
	TargetValue string   `gorm:"column:target_value"`
	IsNumeric   bool     `gorm:"column:is_numeric"`
	Diff        *float64 `gorm:"column:diff"`
}

// TableName overrides the table name.
func (MismatchRecord) TableName() string {
	return "reconcile_mismatches"
}

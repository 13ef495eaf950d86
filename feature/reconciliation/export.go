package reconciliation

import (
	"context"
	"fmt"
	"time"

	"table-reconcile/core/reconcile"

	"gorm.io/gorm"
)

const exportBatchSize = 500

// Migrate creates or updates the export tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&RunRecord{}, &KeyRecord{}, &MismatchRecord{}); err != nil {
		return fmt.Errorf("failed to migrate export tables: %w", err)
	}
	return nil
}

// Export writes rep under runID in a single transaction.
func Export(ctx context.Context, db *gorm.DB, runID string, rep *reconcile.Report) error {
	run, keys, mismatches := toRecords(runID, rep, time.Now())

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		if len(keys) > 0 {
			if err := tx.CreateInBatches(keys, exportBatchSize).Error; err != nil {
				return fmt.Errorf("insert keys: %w", err)
			}
		}
		if len(mismatches) > 0 {
			if err := tx.CreateInBatches(mismatches, exportBatchSize).Error; err != nil {
				return fmt.Errorf("insert mismatches: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to export run %s: %w", runID, err)
	}
	return nil
}

func toRecords(runID string, rep *reconcile.Report, now time.Time) (RunRecord, []KeyRecord, []MismatchRecord) {
	s := rep.Summary
	run := RunRecord{
		ID:               runID,
		SourceFile:       s.SourceFile,
		TargetFile:       s.TargetFile,
		Delimiter:        s.Delimiter,
		HasHeader:        s.HasHeader,
		KeySpec:          s.KeySpec,
		KeyColumns:       s.KeyColumns.String(),
		Tolerance:        s.Tolerance,
		SourceRows:       s.SourceRows,
		TargetRows:       s.TargetRows,
		MissingInTarget:  s.MissingInTarget,
		ExtraInTarget:    s.ExtraInTarget,
		DuplicatesSource: s.DuplicatesSource,
		DuplicatesTarget: s.DuplicatesTarget,
		CommonKeys:       s.CommonKeys,
		Mismatches:       s.Mismatches,
		CreatedAt:        now,
	}

	keys := make([]KeyRecord, 0, len(rep.MissingInTarget)+len(rep.ExtraInTarget)+len(rep.DuplicatesSource)+len(rep.DuplicatesTarget))
	for _, k := range rep.MissingInTarget {
		keys = append(keys, KeyRecord{RunID: runID, Kind: KindMissing, Key: k.String(), Count: 1})
	}
	for _, k := range rep.ExtraInTarget {
		keys = append(keys, KeyRecord{RunID: runID, Kind: KindExtra, Key: k.String(), Count: 1})
	}
	for _, d := range rep.DuplicatesSource {
		keys = append(keys, KeyRecord{RunID: runID, Kind: KindDuplicateSource, Key: d.Key.String(), Count: d.Count})
	}
	for _, d := range rep.DuplicatesTarget {
		keys = append(keys, KeyRecord{RunID: runID, Kind: KindDuplicateTarget, Key: d.Key.String(), Count: d.Count})
	}

	mismatches := make([]MismatchRecord, 0, len(rep.Mismatches))
	for _, m := range rep.Mismatches {
		mismatches = append(mismatches, MismatchRecord{
			RunID:       runID,
			Key:         m.Key.String(),
			ColumnIndex: m.ColumnIndex,
			ColumnName:  m.ColumnName,
			SourceValue: m.SourceValue,
			TargetValue: m.TargetValue,
			IsNumeric:   m.IsNumeric(),
			Diff:        m.Diff,
		})
	}
	return run, keys, mismatches
}

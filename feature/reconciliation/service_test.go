package reconciliation

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"table-reconcile/core/config"
	"table-reconcile/core/database"
	"table-reconcile/core/reconcile"
	"table-reconcile/core/storage"
	"table-reconcile/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	sourceCSV = "id,amt\n1,10.00\n2,5.00\n"
	targetCSV = "id,amt\n1,10.02\n3,5.00\n"
)

func testConfig() *config.Config {
	return &config.Config{
		Reconcile: reconcile.Config{Delimiter: ",", Header: 1, Prefix: "reconcile"},
		Storage:   storage.Config{Bucket: "reports-bucket", UploadPrefix: "reports"},
	}
}

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "old.csv")
	tgt := filepath.Join(dir, "new.csv")
	require.NoError(t, os.WriteFile(src, []byte(sourceCSV), 0o644))
	require.NoError(t, os.WriteFile(tgt, []byte(targetCSV), 0o644))
	return src, tgt
}

func boolPtr(b bool) *bool { return &b }

func TestService_LocalRun(t *testing.T) {
	src, tgt := writeInputs(t)
	prefix := filepath.Join(t.TempDir(), "out", "run")
	svc := NewService(testConfig(), zap.NewNop(), nil, nil)

	result, err := svc.Run(context.Background(), Job{Source: src, Target: tgt, Key: "id", Prefix: prefix})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Report.Summary.MissingInTarget)
	assert.Equal(t, 1, result.Report.Summary.ExtraInTarget)
	assert.Equal(t, 1, result.Report.Summary.Mismatches)
	assert.Len(t, result.Files, 8)
	assert.False(t, result.Exported)
	assert.Empty(t, result.Uploaded)

	data, err := os.ReadFile(prefix + "_missing_in_target.csv")
	require.NoError(t, err)
	assert.Equal(t, "key\n2\n", string(data))
}

func TestService_NoPrefixWritesNothing(t *testing.T) {
	src, tgt := writeInputs(t)
	svc := NewService(testConfig(), zap.NewNop(), nil, nil)

	result, err := svc.Run(context.Background(), Job{Source: src, Target: tgt, Key: "id"})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Empty(t, result.Artifacts)
}

func TestService_ToleranceOverridesDefault(t *testing.T) {
	src, tgt := writeInputs(t)
	cfg := testConfig()
	cfg.Reconcile.Tolerance = 0.05
	svc := NewService(cfg, zap.NewNop(), nil, nil)

	result, err := svc.Run(context.Background(), Job{Source: src, Target: tgt, Key: "id"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Report.Summary.Mismatches)

	zero := 0.0
	result, err = svc.Run(context.Background(), Job{Source: src, Target: tgt, Key: "id", Tolerance: &zero})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Report.Summary.Mismatches)
}

func TestService_ConfigErrors(t *testing.T) {
	src, tgt := writeInputs(t)
	bad := 5

	tests := []struct {
		name     string
		job      Job
		code     int
		noPrefix bool
	}{
		{"MissingSource", Job{Target: tgt, Key: "id"}, reconcile.ExitUsage, false},
		{"MissingKey", Job{Source: src, Target: tgt}, reconcile.ExitUsage, false},
		{"UnreadableSource", Job{Source: filepath.Join(t.TempDir(), "nope.csv"), Target: tgt, Key: "id"}, reconcile.ExitUsage, false},
		{"BadHeaderFlag", Job{Source: src, Target: tgt, Key: "id", Header: &bad}, reconcile.ExitUsage, false},
		{"BadDelimiter", Job{Source: src, Target: tgt, Key: "id", Delimiter: "::"}, reconcile.ExitUsage, false},
		{"UploadWithoutPrefix", Job{Source: src, Target: tgt, Key: "id", Upload: boolPtr(true)}, reconcile.ExitUsage, true},
		{"UnknownKey", Job{Source: src, Target: tgt, Key: "nope"}, reconcile.ExitKeySpec, false},
		{"InvalidURI", Job{Source: "s3://bucket-only", Target: tgt, Key: "id"}, reconcile.ExitUsage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			if !tt.noPrefix {
				tt.job.Prefix = filepath.Join(outDir, "run")
			}

			svc := NewService(testConfig(), zap.NewNop(), new(mocks.Client), nil)
			_, err := svc.Run(context.Background(), tt.job)
			require.Error(t, err)
			assert.Equal(t, tt.code, reconcile.ExitCode(err))

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no artifacts on failure")
		})
	}
}

func TestService_ObjectStorageInput(t *testing.T) {
	_, tgt := writeInputs(t)
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "inputs", "daily/old.csv", mock.Anything).Return(minio.ObjectInfo{Key: "daily/old.csv"}, nil)
	client.On("GetObject", mock.Anything, "inputs", "daily/old.csv", mock.Anything).Return(io.NopCloser(strings.NewReader(sourceCSV)), nil)

	svc := NewService(testConfig(), zap.NewNop(), client, nil)
	result, err := svc.Run(context.Background(), Job{Source: "s3://inputs/daily/old.csv", Target: tgt, Key: "id"})
	require.NoError(t, err)

	assert.Equal(t, "s3://inputs/daily/old.csv", result.Report.Summary.SourceFile)
	assert.Equal(t, 1, result.Report.Summary.CommonKeys)
	client.AssertExpectations(t)
}

func TestService_ObjectStorageMissingObject(t *testing.T) {
	_, tgt := writeInputs(t)
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "inputs", "old.csv", mock.Anything).Return(minio.ObjectInfo{}, errors.New("object not found"))

	svc := NewService(testConfig(), zap.NewNop(), client, nil)
	_, err := svc.Run(context.Background(), Job{Source: "s3://inputs/old.csv", Target: tgt, Key: "id"})
	require.Error(t, err)
	assert.Equal(t, reconcile.ExitUsage, reconcile.ExitCode(err))
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Upload(t *testing.T) {
	src, tgt := writeInputs(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reports-bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "reports-bucket", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "reports-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	svc := NewService(testConfig(), zap.NewNop(), client, nil)
	result, err := svc.Run(context.Background(), Job{
		Source: src,
		Target: tgt,
		Key:    "id",
		Prefix: filepath.Join(t.TempDir(), "run"),
		Upload: boolPtr(true),
	})
	require.NoError(t, err)

	require.Len(t, result.Uploaded, 8)
	assert.Equal(t, "reports/"+result.RunID+"/run_missing_in_target.csv", result.Uploaded[0])
	client.AssertNumberOfCalls(t, "PutObject", 8)
	client.AssertCalled(t, "MakeBucket", mock.Anything, "reports-bucket", mock.Anything)
}

func TestService_UploadFailure(t *testing.T) {
	src, tgt := writeInputs(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reports-bucket").Return(false, errors.New("connection refused"))

	svc := NewService(testConfig(), zap.NewNop(), client, nil)
	_, err := svc.Run(context.Background(), Job{
		Source: src,
		Target: tgt,
		Key:    "id",
		Prefix: filepath.Join(t.TempDir(), "run"),
		Upload: boolPtr(true),
	})
	require.Error(t, err)
	assert.Equal(t, 1, reconcile.ExitCode(err))
}

func TestService_ExportSQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	src, tgt := writeInputs(t)
	svc := NewService(testConfig(), zap.NewNop(), nil, db)

	result, err := svc.Run(context.Background(), Job{Source: src, Target: tgt, Key: "id", Export: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, result.Exported)

	var run RunRecord
	require.NoError(t, db.First(&run, "id = ?", result.RunID).Error)
	assert.Equal(t, src, run.SourceFile)
	assert.Equal(t, 1, run.Mismatches)

	var keys []KeyRecord
	require.NoError(t, db.Where("run_id = ?", result.RunID).Order("id").Find(&keys).Error)
	require.Len(t, keys, 2)
	assert.Equal(t, KindMissing, keys[0].Kind)
	assert.Equal(t, "2", keys[0].Key)
	assert.Equal(t, KindExtra, keys[1].Kind)
	assert.Equal(t, "3", keys[1].Key)

	var mismatches []MismatchRecord
	require.NoError(t, db.Where("run_id = ?", result.RunID).Find(&mismatches).Error)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "amt", mismatches[0].ColumnName)
	assert.True(t, mismatches[0].IsNumeric)
	require.NotNil(t, mismatches[0].Diff)
	assert.InDelta(t, -0.02, *mismatches[0].Diff, 1e-9)
}

func TestService_ConcurrentJobs(t *testing.T) {
	src, tgt := writeInputs(t)
	svc := NewService(testConfig(), zap.NewNop(), nil, nil)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			job := Job{Source: src, Target: tgt, Key: "id"}
			if i%2 == 1 {
				job.Key = "ID"
			}
			results[i], errs[i] = svc.Run(context.Background(), job)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, 1, results[i].Report.Summary.Mismatches)
	}
}

func TestJob_WithinDir(t *testing.T) {
	job, err := Job{Source: "in/old.csv", Target: "s3://inputs/new.csv", Prefix: "out/run"}.WithinDir("/srv/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/data", "in", "old.csv"), job.Source)
	assert.Equal(t, "s3://inputs/new.csv", job.Target)
	assert.Equal(t, filepath.Join("/srv/data", "out", "run"), job.Prefix)

	for _, bad := range []Job{
		{Source: "/etc/passwd", Target: "new.csv"},
		{Source: "old.csv", Target: "../new.csv"},
		{Source: "old.csv", Target: "new.csv", Prefix: "a/../../b"},
	} {
		_, err := bad.WithinDir("/srv/data")
		assert.Equal(t, reconcile.ExitUsage, reconcile.ExitCode(err), bad)
	}
}

package reconciliation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"table-reconcile/core/config"
	"table-reconcile/core/database"
	"table-reconcile/core/reconcile"
	"table-reconcile/core/report"
	"table-reconcile/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Result is the outcome of one job.
type Result struct {
	RunID  string            `json:"run_id"`
	Report *reconcile.Report `json:"report"`
	// Files lists the artifact paths written locally.
	Files []string `json:"files,omitempty"`
	// Uploaded lists the object keys written to storage.
	Uploaded []string `json:"uploaded,omitempty"`
	Exported bool     `json:"exported"`

	Artifacts []report.Artifact `json:"-"`
}

// Service runs reconciliation jobs.
type Service struct {
	cfg    *config.Config
	logger *zap.Logger

	mu      sync.Mutex
	sf      singleflight.Group
	storage storage.Client
	db      *gorm.DB
}

// NewService creates a new reconciliation service.
// client and db may be nil; they are then created from cfg on first use.
func NewService(cfg *config.Config, logger *zap.Logger, client storage.Client, db *gorm.DB) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:     cfg,
		logger:  logger,
		storage: client,
		db:      db,
	}
}

// Run executes job. Identical concurrent jobs share one execution and
// distinct jobs run one at a time.
func (s *Service) Run(ctx context.Context, job Job) (*Result, error) {
	job = job.WithDefaults(s.cfg)
	opts, err := job.Options()
	if err != nil {
		return nil, err
	}

	v, err, shared := s.sf.Do(job.flightKey(), func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.run(ctx, job, opts)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight reconciliation", zap.String("source", job.Source), zap.String("target", job.Target))
	}
	return v.(*Result), nil
}

func (s *Service) run(ctx context.Context, job Job, opts reconcile.Options) (*Result, error) {
	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID))
	l.Info("Starting reconciliation",
		zap.String("source", job.Source),
		zap.String("target", job.Target),
		zap.String("key", job.Key))

	src, err := s.open(ctx, "source", job.Source)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tgt, err := s.open(ctx, "target", job.Target)
	if err != nil {
		return nil, err
	}
	defer tgt.Close()

	rep, err := reconcile.Reconcile(src, tgt, opts, l)
	if err != nil {
		return nil, err
	}
	result := &Result{RunID: runID, Report: rep}

	if job.Prefix != "" {
		artifacts, err := report.Render(rep, job.Prefix)
		if err != nil {
			return nil, err
		}
		if err := report.WriteFiles(artifacts); err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		for _, a := range artifacts {
			result.Files = append(result.Files, a.Path)
		}
	}

	if job.uploads() {
		keys, err := s.upload(ctx, runID, result.Artifacts, l)
		if err != nil {
			return nil, err
		}
		result.Uploaded = keys
	}

	if job.exports() {
		if err := s.export(ctx, runID, rep); err != nil {
			return nil, err
		}
		result.Exported = true
	}

	sum := rep.Summary
	l.Info("Reconciliation completed",
		zap.Int("missing_in_target", sum.MissingInTarget),
		zap.Int("extra_in_target", sum.ExtraInTarget),
		zap.Int("duplicates_source", sum.DuplicatesSource),
		zap.Int("duplicates_target", sum.DuplicatesTarget),
		zap.Int("mismatches", sum.Mismatches),
		zap.Strings("files", result.Files))

	return result, nil
}

// open returns a reader for a local path or an s3:// object.
// Unreadable inputs are reported as usage errors.
func (s *Service) open(ctx context.Context, role, name string) (io.ReadCloser, error) {
	if !storage.IsURI(name) {
		f, err := os.Open(name)
		if err != nil {
			return nil, reconcile.UsageError(err, "cannot open %s file %s", role, name)
		}
		return f, nil
	}

	loc, err := storage.ParseURI(name)
	if err != nil {
		return nil, reconcile.UsageError(err, "invalid %s location", role)
	}
	client, err := s.storageClient()
	if err != nil {
		return nil, err
	}
	rc, err := storage.Open(ctx, client, loc)
	if err != nil {
		return nil, reconcile.UsageError(err, "cannot read %s object %s", role, loc)
	}
	return rc, nil
}

func (s *Service) upload(ctx context.Context, runID string, artifacts []report.Artifact, l *zap.Logger) ([]string, error) {
	client, err := s.storageClient()
	if err != nil {
		return nil, err
	}

	bucket := s.cfg.Storage.Bucket
	if err := storage.EnsureBucket(ctx, client, bucket, s.cfg.Storage.Region); err != nil {
		return nil, err
	}

	objects := make([]storage.Object, len(artifacts))
	for i, a := range artifacts {
		objects[i] = storage.Object{Name: a.Name(), ContentType: a.ContentType, Data: a.Data}
	}
	keys, err := storage.UploadAll(ctx, client, bucket, path.Join(s.cfg.Storage.UploadPrefix, runID), objects, l)
	if err != nil {
		return nil, err
	}
	l.Info("Uploaded artifacts", zap.String("bucket", bucket), zap.Int("count", len(keys)))
	return keys, nil
}

func (s *Service) export(ctx context.Context, runID string, rep *reconcile.Report) error {
	db, err := s.database()
	if err != nil {
		return err
	}
	if err := Migrate(ctx, db); err != nil {
		return err
	}
	return Export(ctx, db, runID, rep)
}

// storageClient and database are only called while s.mu is held.
func (s *Service) storageClient() (storage.Client, error) {
	if s.storage != nil {
		return s.storage, nil
	}
	client, err := storage.NewClient(s.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	s.storage = client
	return client, nil
}

func (s *Service) database() (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := database.Connect(s.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	s.db = db
	return db, nil
}

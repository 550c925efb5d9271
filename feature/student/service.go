package student

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"student-sync/core/reconcile"
	"student-sync/core/storage"
	"student-sync/core/tabular"
	"student-sync/feature/student/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageUnavailable is returned when an import needs object storage but
// no client was configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// ImportOptions adjusts a single import.
type ImportOptions struct {
	// ChunkSize overrides the configured chunk size when positive.
	ChunkSize int
}

// Service handles student imports and listings.
type Service struct {
	store  *GormStore
	engine *reconcile.Engine
	client storage.Client
	bucket string
	region string
	cfg    reconcile.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a student service. client may be nil when object
// storage is not used.
func NewService(db *gorm.DB, client storage.Client, storageCfg storage.Config, cfg reconcile.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewGormStore(db)

	engine, err := reconcile.NewEngine(store, logger, reconcile.Options{MatchMode: reconcile.MatchMode(cfg.MatchMode)})
	if err != nil {
		return nil, fmt.Errorf("failed to create import engine: %w", err)
	}

	return &Service{
		store:  store,
		engine: engine,
		client: client,
		bucket: storageCfg.Bucket,
		region: storageCfg.Region,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Prepare makes sure the students table is usable.
func (s *Service) Prepare(ctx context.Context) error {
	return s.store.Prepare(ctx)
}

// List returns all stored students.
func (s *Service) List(ctx context.Context) ([]models.Student, error) {
	return s.store.List(ctx)
}

// Import reconciles the store with source, which is a local path or an
// s3://bucket/key reference. An empty source means the configured default.
//
// Pre-run failures (missing source, unsupported format) return an empty
// report. A run that aborts returns the partial report together with the
// error.
func (s *Service) Import(ctx context.Context, source string, opts ImportOptions) (reconcile.Report, error) {
	if source == "" {
		source = s.cfg.DefaultSource
	}
	l := s.logger.With(zap.String("source", source))

	var (
		src tabular.Reader
		err error
	)
	if storage.IsObjectURL(source) {
		src, err = s.openObject(ctx, source, s.readerOptions(l, opts))
	} else {
		src, err = tabular.Open(source, "", s.readerOptions(l, opts)...)
	}
	if err != nil {
		return reconcile.Report{}, err
	}
	defer src.Close()

	return s.run(ctx, l, src)
}

// ImportUpload reconciles the store with an uploaded file. When archiving is
// enabled the payload is first copied to object storage.
func (s *Service) ImportUpload(ctx context.Context, filename string, payload io.ReadSeeker, size int64, opts ImportOptions) (reconcile.Report, error) {
	format, err := tabular.FormatFromPath(filename)
	if err != nil {
		return reconcile.Report{}, err
	}
	l := s.logger.With(zap.String("upload", filename))

	if s.cfg.ArchiveUploads {
		key, err := s.archive(ctx, filename, format, payload, size)
		if err != nil {
			return reconcile.Report{}, err
		}
		l = l.With(zap.String("archive", key))
		if _, err := payload.Seek(0, io.SeekStart); err != nil {
			return reconcile.Report{}, fmt.Errorf("rewind upload: %w", err)
		}
	}

	src, err := tabular.NewReader(payload, format, s.readerOptions(l, opts)...)
	if err != nil {
		return reconcile.Report{}, err
	}
	defer src.Close()

	return s.run(ctx, l, src)
}

func (s *Service) run(ctx context.Context, l *zap.Logger, src tabular.Reader) (reconcile.Report, error) {
	started := s.now()
	summary, err := s.engine.Run(ctx, src)
	report := reconcile.BuildReport(summary)
	if err != nil {
		return report, err
	}

	l.Info("Import completed",
		zap.String("status", string(report.Status)),
		zap.Int("total", report.TotalRecords),
		zap.Int("new", report.NumNew),
		zap.Int("updated", report.NumUpdated),
		zap.Int("duplicates", report.NumDuplicates),
		zap.Int("skipped", report.NumSkipped),
		zap.Int("deleted", report.NumDeleted),
		zap.Duration("duration", s.now().Sub(started)))
	return report, nil
}

func (s *Service) readerOptions(l *zap.Logger, opts ImportOptions) []tabular.Option {
	size := opts.ChunkSize
	if size <= 0 {
		size = s.cfg.ChunkSize
	}
	return []tabular.Option{
		tabular.WithChunkSize(size),
		tabular.WithObserver(reconcile.ProgressLogger(l)),
	}
}

func (s *Service) openObject(ctx context.Context, source string, opts []tabular.Option) (tabular.Reader, error) {
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}
	ref, err := storage.ParseObjectURL(source)
	if err != nil {
		return nil, err
	}
	format, err := tabular.FormatFromPath(ref.Key)
	if err != nil {
		return nil, err
	}

	rc, err := storage.Download(ctx, s.client, ref)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, &tabular.SourceNotFoundError{Path: source}
		}
		return nil, err
	}

	r, err := tabular.NewReader(rc, format, opts...)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return &objectReader{Reader: r, body: rc}, nil
}

// objectReader closes the downloaded body along with the reader.
type objectReader struct {
	tabular.Reader
	body io.Closer
}

func (o *objectReader) Close() error {
	err := o.Reader.Close()
	if cerr := o.body.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (s *Service) archive(ctx context.Context, filename string, format tabular.Format, payload io.Reader, size int64) (string, error) {
	if s.client == nil {
		return "", ErrStorageUnavailable
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return "", err
	}

	key := storage.ArchiveKey(s.cfg.UploadPrefix, filename, uuid.NewString(), s.now())
	_, err := s.client.PutObject(ctx, s.bucket, key, payload, size, minio.PutObjectOptions{
		ContentType: contentType(format),
	})
	if err != nil {
		return "", fmt.Errorf("archive upload %s: %w", key, err)
	}
	return key, nil
}

func contentType(f tabular.Format) string {
	if f == tabular.FormatSpreadsheet {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

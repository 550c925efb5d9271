package integrity

import (
	"context"
	"errors"
	"fmt"

	"student-sync/core/database"
	"student-sync/core/storage"
	"student-sync/feature/student/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageUnavailable is returned by storage checks when no client is configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// DuplicateGroup is a natural key stored more than once. Imports skip such
// keys as ambiguous.
type DuplicateGroup struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	City  string `json:"city"`
	Count int    `json:"count"`
	IDs   []uint `json:"ids"`
}

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil.
func NewService(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
	}
}

// CheckSchema returns the required columns missing from the students table.
func (s *Service) CheckSchema(ctx context.Context) ([]string, error) {
	cols, err := database.GetTableColumns(s.db.WithContext(ctx), models.TableStudents)
	if err != nil {
		return nil, err
	}
	missing := database.MissingColumns(cols, models.RequiredColumns...)
	if missing == nil {
		missing = []string{}
	}
	return missing, nil
}

// CheckDuplicates lists every (name, age, city) stored more than once.
func (s *Service) CheckDuplicates(ctx context.Context) ([]DuplicateGroup, error) {
	db := s.db.WithContext(ctx)

	var keys []struct {
		Name  string
		Age   int
		City  string
		Count int
	}
	err := db.Model(&models.Student{}).
		Select("name, age, city, COUNT(*) AS count").
		Group("name, age, city").
		Having("COUNT(*) > ?", 1).
		Order("name, age, city").
		Scan(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group students: %w", err)
	}

	groups := make([]DuplicateGroup, 0, len(keys))
	for _, k := range keys {
		g := DuplicateGroup{Name: k.Name, Age: k.Age, City: k.City, Count: k.Count}
		err := db.Model(&models.Student{}).
			Where("name = ? AND age = ? AND city = ?", k.Name, k.Age, k.City).
			Order("id").
			Pluck("id", &g.IDs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load ids for %s: %w", k.Name, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// FixDuplicates keeps the lowest id of each group and deletes the rest.
// It returns the number of deleted rows.
func (s *Service) FixDuplicates(ctx context.Context, groups []DuplicateGroup) (int, error) {
	var extra []uint
	for _, g := range groups {
		if len(g.IDs) > 1 {
			extra = append(extra, g.IDs[1:]...)
		}
	}
	if len(extra) == 0 {
		return 0, nil
	}

	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", extra).Delete(&models.Student{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicate students: %w", err)
	}
	s.logger.Info("Removed duplicate students", zap.Int64("count", deleted))
	return int(deleted), nil
}

// CheckStorage reports whether the archive bucket exists.
func (s *Service) CheckStorage(ctx context.Context) (bool, error) {
	if s.client == nil {
		return false, ErrStorageUnavailable
	}
	return s.client.BucketExists(ctx, s.bucket)
}

// FixStorage creates the archive bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	return storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
}

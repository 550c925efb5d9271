package student

import (
	"context"
	"fmt"
	"strings"

	"student-sync/core/database"
	"student-sync/core/reconcile"
	"student-sync/feature/student/models"

	"gorm.io/gorm"
)

// DefaultDeleteBatchSize bounds the ids per DELETE statement.
const DefaultDeleteBatchSize = 500

// GormStore persists students with GORM. It implements reconcile.Store and
// reconcile.NameFinder.
type GormStore struct {
	db          *gorm.DB
	deleteBatch int
}

// StoreOption configures a GormStore.
type StoreOption func(*GormStore)

// WithDeleteBatchSize overrides DefaultDeleteBatchSize.
func WithDeleteBatchSize(n int) StoreOption {
	return func(s *GormStore) {
		if n > 0 {
			s.deleteBatch = n
		}
	}
}

// NewGormStore creates a store over db.
func NewGormStore(db *gorm.DB, opts ...StoreOption) *GormStore {
	s := &GormStore{db: db, deleteBatch: DefaultDeleteBatchSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ reconcile.Store      = (*GormStore)(nil)
	_ reconcile.NameFinder = (*GormStore)(nil)
)

// Prepare creates the students table when it does not exist, and otherwise
// verifies that it has the expected columns.
func (s *GormStore) Prepare(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	cols, err := database.GetTableColumns(db, models.TableStudents)
	if err != nil || len(cols) == 0 {
		// MySQL reports a missing table as an error, SQLite as no columns.
		if err := db.AutoMigrate(&models.Student{}); err != nil {
			return fmt.Errorf("failed to create %s table: %w", models.TableStudents, err)
		}
		return nil
	}

	if missing := database.MissingColumns(cols, models.RequiredColumns...); len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", models.TableStudents, strings.Join(missing, ", "))
	}
	return nil
}

func (s *GormStore) FindExact(ctx context.Context, name string, age int, city string) ([]reconcile.Entity, error) {
	var rows []models.Student
	err := s.db.WithContext(ctx).
		Where("name = ? AND age = ? AND city = ?", name, age, city).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (s *GormStore) FindByName(ctx context.Context, name string) ([]reconcile.Entity, error) {
	var rows []models.Student
	if err := s.db.WithContext(ctx).Where("name = ?", name).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (s *GormStore) Create(ctx context.Context, rec reconcile.Record) (reconcile.Entity, error) {
	row := models.Student{Name: rec.Name, Age: rec.Age, City: rec.City}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return reconcile.Entity{}, err
	}
	return toEntity(row), nil
}

func (s *GormStore) Update(ctx context.Context, id reconcile.EntityID, age int, city string) error {
	return s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", uint(id)).
		Updates(map[string]any{"age": age, "city": city}).Error
}

func (s *GormStore) AllIDs(ctx context.Context) ([]reconcile.EntityID, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Student{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	out := make([]reconcile.EntityID, len(ids))
	for i, id := range ids {
		out[i] = reconcile.EntityID(id)
	}
	return out, nil
}

// DeleteMany removes ids in batches inside a single transaction, so a failed
// batch leaves the table untouched.
func (s *GormStore) DeleteMany(ctx context.Context, ids []reconcile.EntityID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(ids); start += s.deleteBatch {
			end := min(start+s.deleteBatch, len(ids))
			batch := make([]uint, 0, end-start)
			for _, id := range ids[start:end] {
				batch = append(batch, uint(id))
			}
			if err := tx.Where("id IN ?", batch).Delete(&models.Student{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns every stored student ordered by id.
func (s *GormStore) List(ctx context.Context) ([]models.Student, error) {
	rows := []models.Student{}
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func toEntity(row models.Student) reconcile.Entity {
	return reconcile.Entity{ID: reconcile.EntityID(row.ID), Name: row.Name, Age: row.Age, City: row.City}
}

func toEntities(rows []models.Student) []reconcile.Entity {
	out := make([]reconcile.Entity, len(rows))
	for i, row := range rows {
		out[i] = toEntity(row)
	}
	return out
}

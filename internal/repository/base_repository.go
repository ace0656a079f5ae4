package repository

import (
	"context"

	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// baseRepository implements the generic store contract for one entity.
// preloads are applied on every read.
type baseRepository[T any] struct {
	preloads []string
}

func newBaseRepository[T any](preloads ...string) baseRepository[T] {
	return baseRepository[T]{preloads: preloads}
}

func (r baseRepository[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	return db
}

// Create inserts the row only; associated records must already exist.
func (r baseRepository[T]) Create(ctx context.Context, db *gorm.DB, record *T) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

func (r baseRepository[T]) CreateBatch(ctx context.Context, db *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&records).Error
	})
	return translateError(err)
}

func (r baseRepository[T]) FindByID(ctx context.Context, db *gorm.DB, id int64) (*T, error) {
	var record T
	if err := r.withPreloads(db.WithContext(ctx)).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r baseRepository[T]) FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]T, error) {
	records := []T{}
	if len(ids) == 0 {
		return records, nil
	}
	err := r.withPreloads(db.WithContext(ctx)).
		Where(map[string]any{"id": ids}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Find(&records).Error
	if err != nil {
		return nil, translateError(err)
	}
	return records, nil
}

func (r baseRepository[T]) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]T, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	records := []T{}
	q := r.withPreloads(db.WithContext(ctx)).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return records, total, nil
}

// Update writes every column of record. Associations are left untouched.
func (r baseRepository[T]) Update(ctx context.Context, db *gorm.DB, record *T) error {
	result := db.WithContext(ctx).Model(record).Omit(clause.Associations).Select("*").Updates(record)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r baseRepository[T]) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	result := db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row is missing or a foreign key points
	// at a row that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation covers unique, not-null, check and enumeration
	// violations.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Repository is the store contract shared by every entity. All methods run
// against the given db, which may be a transaction.
type Repository[T any] interface {
	Create(ctx context.Context, db *gorm.DB, record *T) error
	// CreateBatch inserts every record or none of them.
	CreateBatch(ctx context.Context, db *gorm.DB, records []T) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*T, error)
	// FindByIDs returns the matching records ordered by id; unknown ids are skipped.
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]T, error)
	FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]T, int64, error)
	Update(ctx context.Context, db *gorm.DB, record *T) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

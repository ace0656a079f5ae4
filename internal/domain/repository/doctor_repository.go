package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Repository[entity.Doctor]
	// LockForUpdate reads the doctor row with SELECT ... FOR UPDATE. Must run
	// inside a transaction.
	LockForUpdate(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error)
}

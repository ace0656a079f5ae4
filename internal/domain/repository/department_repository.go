package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Repository[entity.Department]
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Department, error)
	// ClearHead unsets head_doctor_id wherever it points at doctorID.
	ClearHead(ctx context.Context, db *gorm.DB, doctorID int64) error
}

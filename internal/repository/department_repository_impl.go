package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type departmentRepository struct {
	baseRepository[entity.Department]
}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{baseRepository: newBaseRepository[entity.Department]("HeadDoctor.User")}
}

func (r *departmentRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Department, error) {
	var department entity.Department
	err := r.withPreloads(db.WithContext(ctx)).Where("name = ?", name).First(&department).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &department, nil
}

func (r *departmentRepository) ClearHead(ctx context.Context, db *gorm.DB, doctorID int64) error {
	err := db.WithContext(ctx).Model(&entity.Department{}).
		Where("head_doctor_id = ?", doctorID).
		Update("head_doctor_id", nil).Error
	return translateError(err)
}

package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct {
	baseRepository[entity.Doctor]
}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{baseRepository: newBaseRepository[entity.Doctor]("User", "Department")}
}

// LockForUpdate is a plain read on SQLite, which has no row locks; there the
// surrounding write transaction serialises callers instead.
func (r *doctorRepository) LockForUpdate(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	q := db.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var doctor entity.Doctor
	if err := q.First(&doctor, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &doctor, nil
}

// Delete releases any department headed by the doctor before removing it.
func (r *doctorRepository) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	err := db.WithContext(ctx).Model(&entity.Department{}).
		Where("head_doctor_id = ?", id).
		Update("head_doctor_id", nil).Error
	if err != nil {
		return translateError(err)
	}
	return r.baseRepository.Delete(ctx, db, id)
}

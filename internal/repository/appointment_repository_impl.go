package repository

import (
	"context"
	"fmt"
	"time"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	baseRepository[entity.Appointment]
}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{baseRepository: newBaseRepository[entity.Appointment]("Patient.User", "Doctor.User")}
}

// UpdateStatusBefore writes the column directly; save hooks would validate
// the empty model instead of the new status, so to is checked here.
func (r *appointmentRepository) UpdateStatusBefore(ctx context.Context, db *gorm.DB, before time.Time, from, to entity.AppointmentStatus) (int64, error) {
	if !to.Valid() {
		return 0, fmt.Errorf("%w: status=%s", domainRepo.ErrConstraintViolation, to)
	}

	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("appointment_date < ? AND status = ?", before.UTC(), from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

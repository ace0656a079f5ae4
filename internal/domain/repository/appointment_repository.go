package repository

import (
	"context"
	"time"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Repository[entity.Appointment]
	// UpdateStatusBefore moves every appointment dated strictly before the
	// given instant from one status to another and returns the affected count.
	UpdateStatusBefore(ctx context.Context, db *gorm.DB, before time.Time, from, to entity.AppointmentStatus) (int64, error)
}

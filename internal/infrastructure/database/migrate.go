package database

import (
	"fmt"

	"hospital-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Models lists every table in foreign-key dependency order.
func Models() []any {
	return []any{
		&entity.User{},
		&entity.Department{},
		&entity.Patient{},
		&entity.Doctor{},
		&entity.Insurance{},
		&entity.Appointment{},
		&entity.Prescription{},
		&entity.Surgery{},
		&entity.PatientDoctor{},
	}
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB, log *logrus.Logger) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("Database schema migrated")
	return nil
}

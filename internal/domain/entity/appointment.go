package entity

import (
	"time"

	"gorm.io/gorm"
)

// Appointment represents a visit between a patient and a doctor
type Appointment struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int64             `gorm:"not null;index" json:"patient_id"`
	DoctorID        int64             `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	Status          AppointmentStatus `gorm:"type:varchar(15);not null;index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if !a.Status.Valid() {
		return invalidEnum("status", a.Status)
	}
	a.AppointmentDate = a.AppointmentDate.UTC()
	return nil
}

package entity

import (
	"time"

	"gorm.io/gorm"
)

type Surgery struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   int64     `gorm:"not null;index" json:"patient_id"`
	DoctorID    int64     `gorm:"not null;index" json:"doctor_id"`
	SurgeryDate time.Time `gorm:"not null;index" json:"surgery_date"`
	SurgeryType string    `gorm:"type:varchar(255)" json:"surgery_type,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
}

func (Surgery) TableName() string {
	return "surgeries"
}

func (s *Surgery) BeforeSave(tx *gorm.DB) error {
	s.SurgeryDate = s.SurgeryDate.UTC()
	return nil
}

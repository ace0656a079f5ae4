package entity

import "gorm.io/gorm"

// PatientDoctor links a patient to a doctor with a relationship type
type PatientDoctor struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID        int64            `gorm:"not null;uniqueIndex:idx_patient_doctor_pair" json:"patient_id"`
	DoctorID         int64            `gorm:"not null;uniqueIndex:idx_patient_doctor_pair;index" json:"doctor_id"`
	RelationshipType RelationshipType `gorm:"type:varchar(15);not null;default:'Primary_Care'" json:"relationship_type"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
}

func (PatientDoctor) TableName() string {
	return "patient_doctors"
}

func (r *PatientDoctor) BeforeSave(tx *gorm.DB) error {
	if r.RelationshipType == "" {
		r.RelationshipType = RelationshipPrimaryCare
	}
	if !r.RelationshipType.Valid() {
		return invalidEnum("relationship_type", r.RelationshipType)
	}
	return nil
}

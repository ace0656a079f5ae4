package dto

import "time"

// Request DTOs

type CreateSurgeryRequest struct {
	PatientID   int64     `json:"patient_id" validate:"required,gt=0"`
	DoctorID    int64     `json:"doctor_id" validate:"required,gt=0"`
	SurgeryDate time.Time `json:"surgery_date" validate:"required"`
	SurgeryType string    `json:"surgery_type" validate:"max=255"`
	Notes       string    `json:"notes"`
}

type UpdateSurgeryRequest struct {
	SurgeryDate *time.Time `json:"surgery_date"`
	SurgeryType *string    `json:"surgery_type" validate:"omitempty,max=255"`
	Notes       *string    `json:"notes"`
}

// Response DTOs

type SurgeryResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	SurgeryDate time.Time `json:"surgery_date"`
	SurgeryType string    `json:"surgery_type,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

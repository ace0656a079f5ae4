package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       int64     `json:"patient_id" validate:"required,gt=0"`
	DoctorID        int64     `json:"doctor_id" validate:"required,gt=0"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Status          string    `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"` // default Scheduled
	Notes           string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Status          *string    `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
	Notes           *string    `json:"notes"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64            `json:"id"`
	PatientID       int64            `json:"patient_id"`
	DoctorID        int64            `json:"doctor_id"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	Doctor          *DoctorResponse  `json:"doctor,omitempty"`
	AppointmentDate time.Time        `json:"appointment_date"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes,omitempty"`
}

package dto

// Request DTOs

// CreatePrescriptionRequest may omit the patient and doctor; they are taken
// from the appointment.
type CreatePrescriptionRequest struct {
	AppointmentID  int64  `json:"appointment_id" validate:"required,gt=0"`
	PatientID      int64  `json:"patient_id" validate:"omitempty,gt=0"`
	DoctorID       int64  `json:"doctor_id" validate:"omitempty,gt=0"`
	MedicineDetail string `json:"medicine_detail"`
	Instructions   string `json:"instructions"`
}

type UpdatePrescriptionRequest struct {
	MedicineDetail *string `json:"medicine_detail"`
	Instructions   *string `json:"instructions"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID             int64  `json:"id"`
	AppointmentID  int64  `json:"appointment_id"`
	PatientID      int64  `json:"patient_id"`
	DoctorID       int64  `json:"doctor_id"`
	MedicineDetail string `json:"medicine_detail,omitempty"`
	Instructions   string `json:"instructions,omitempty"`
}

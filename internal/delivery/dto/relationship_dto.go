package dto

// Request DTOs

type CreateRelationshipRequest struct {
	PatientID        int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID         int64  `json:"doctor_id" validate:"required,gt=0"`
	RelationshipType string `json:"relationship_type" validate:"omitempty,oneof=Primary_Care Consultation Specialist"`
}

type UpdateRelationshipRequest struct {
	RelationshipType string `json:"relationship_type" validate:"required,oneof=Primary_Care Consultation Specialist"`
}

// Response DTOs

type RelationshipResponse struct {
	ID               int64            `json:"id"`
	PatientID        int64            `json:"patient_id"`
	DoctorID         int64            `json:"doctor_id"`
	RelationshipType string           `json:"relationship_type"`
	Patient          *PatientResponse `json:"patient,omitempty"`
	Doctor           *DoctorResponse  `json:"doctor,omitempty"`
}

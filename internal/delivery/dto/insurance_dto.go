package dto

// Request DTOs

type CreateInsuranceRequest struct {
	PatientID       int64  `json:"patient_id" validate:"required,gt=0"`
	Provider        string `json:"provider" validate:"max=255"`
	PolicyNumber    string `json:"policy_number" validate:"max=255"`
	CoverageDetails string `json:"coverage_details"`
}

type UpdateInsuranceRequest struct {
	Provider        *string `json:"provider" validate:"omitempty,max=255"`
	PolicyNumber    *string `json:"policy_number" validate:"omitempty,max=255"`
	CoverageDetails *string `json:"coverage_details"`
}

// Response DTOs

type InsuranceResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patient_id"`
	Provider        string `json:"provider,omitempty"`
	PolicyNumber    string `json:"policy_number,omitempty"`
	CoverageDetails string `json:"coverage_details,omitempty"`
}

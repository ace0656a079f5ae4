package dto

// Request DTOs

// CreatePatientRequest creates the user and the patient profile together.
type CreatePatientRequest struct {
	User        CreateUserRequest `json:"user"`
	DateOfBirth string            `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string            `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     string            `json:"address"`
}

type UpdatePatientRequest struct {
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     *string `json:"address"`
}

// Response DTOs

type PatientResponse struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	User        *UserResponse `json:"user,omitempty"`
	DateOfBirth *string       `json:"date_of_birth,omitempty"`
	Gender      *string       `json:"gender,omitempty"`
	Address     string        `json:"address,omitempty"`
}

package dto

// Request DTOs

type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateDepartmentRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	HeadDoctorID *int64  `json:"head_doctor_id" validate:"omitempty,gte=0"` // 0 clears the head
}

// Response DTOs

type DepartmentResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	HeadDoctorID *int64          `json:"head_doctor_id,omitempty"`
	HeadDoctor   *DoctorResponse `json:"head_doctor"`
}

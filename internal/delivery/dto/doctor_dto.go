package dto

// Request DTOs

type CreateDoctorRequest struct {
	User           CreateUserRequest `json:"user"`
	Specialization string            `json:"specialization" validate:"max=255"`
	DepartmentID   *int64            `json:"department_id" validate:"omitempty,gt=0"`
}

type UpdateDoctorRequest struct {
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
	DepartmentID   *int64  `json:"department_id" validate:"omitempty,gte=0"` // 0 detaches the doctor
}

// Response DTOs

type DoctorResponse struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	User           *UserResponse `json:"user,omitempty"`
	Specialization string        `json:"specialization,omitempty"`
	DepartmentID   *int64        `json:"department_id,omitempty"`
	DepartmentName string        `json:"department_name,omitempty"`
}

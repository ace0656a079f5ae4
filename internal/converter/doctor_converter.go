package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil || doctor.ID == 0 {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		User:           UserToResponse(&doctor.User),
		Specialization: doctor.Specialization,
		DepartmentID:   doctor.DepartmentID,
	}
	if doctor.Department != nil {
		response.DepartmentName = doctor.Department.Name
	}
	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

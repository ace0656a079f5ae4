package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}

	return &dto.DepartmentResponse{
		ID:           department.ID,
		Name:         department.Name,
		HeadDoctorID: department.HeadDoctorID,
		HeadDoctor:   DoctorToResponse(department.HeadDoctor),
	}
}

func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *DepartmentToResponse(&departments[i])
	}
	return responses
}

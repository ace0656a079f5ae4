package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// PatientToResponse converts a Patient entity to PatientResponse DTO. The
// user is included when it was loaded.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:      patient.ID,
		UserID:  patient.UserID,
		User:    UserToResponse(&patient.User),
		Address: patient.Address,
	}
	if patient.DateOfBirth != nil {
		dob := patient.DateOfBirth.Format(dateLayout)
		response.DateOfBirth = &dob
	}
	if patient.Gender != nil {
		gender := string(*patient.Gender)
		response.Gender = &gender
	}
	return response
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

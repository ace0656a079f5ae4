package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

func InsuranceToResponse(insurance *entity.Insurance) *dto.InsuranceResponse {
	if insurance == nil {
		return nil
	}

	return &dto.InsuranceResponse{
		ID:              insurance.ID,
		PatientID:       insurance.PatientID,
		Provider:        insurance.Provider,
		PolicyNumber:    insurance.PolicyNumber,
		CoverageDetails: insurance.CoverageDetails,
	}
}

func InsurancesToResponses(insurances []entity.Insurance) []dto.InsuranceResponse {
	responses := make([]dto.InsuranceResponse, len(insurances))
	for i := range insurances {
		responses[i] = *InsuranceToResponse(&insurances[i])
	}
	return responses
}

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:             prescription.ID,
		AppointmentID:  prescription.AppointmentID,
		PatientID:      prescription.PatientID,
		DoctorID:       prescription.DoctorID,
		MedicineDetail: prescription.MedicineDetail,
		Instructions:   prescription.Instructions,
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

func SurgeryToResponse(surgery *entity.Surgery) *dto.SurgeryResponse {
	if surgery == nil {
		return nil
	}

	return &dto.SurgeryResponse{
		ID:          surgery.ID,
		PatientID:   surgery.PatientID,
		DoctorID:    surgery.DoctorID,
		SurgeryDate: surgery.SurgeryDate.UTC(),
		SurgeryType: surgery.SurgeryType,
		Notes:       surgery.Notes,
	}
}

func SurgeriesToResponses(surgeries []entity.Surgery) []dto.SurgeryResponse {
	responses := make([]dto.SurgeryResponse, len(surgeries))
	for i := range surgeries {
		responses[i] = *SurgeryToResponse(&surgeries[i])
	}
	return responses
}

func RelationshipToResponse(relationship *entity.PatientDoctor) *dto.RelationshipResponse {
	if relationship == nil {
		return nil
	}

	response := &dto.RelationshipResponse{
		ID:               relationship.ID,
		PatientID:        relationship.PatientID,
		DoctorID:         relationship.DoctorID,
		RelationshipType: string(relationship.RelationshipType),
		Doctor:           DoctorToResponse(&relationship.Doctor),
	}
	if relationship.Patient.ID != 0 {
		response.Patient = PatientToResponse(&relationship.Patient)
	}
	return response
}

func RelationshipsToResponses(relationships []entity.PatientDoctor) []dto.RelationshipResponse {
	responses := make([]dto.RelationshipResponse, len(relationships))
	for i := range relationships {
		responses[i] = *RelationshipToResponse(&relationships[i])
	}
	return responses
}

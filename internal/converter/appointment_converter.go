package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse
// DTO. Patient and doctor are included when they were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.UTC(),
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
	}
	if appointment.Patient.ID != 0 {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	response.Doctor = DoctorToResponse(&appointment.Doctor)
	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

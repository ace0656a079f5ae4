package dto

// Request DTOs

type ScheduleMatrixRequest struct {
	Patients int `json:"patients" validate:"gt=0"`
	Doctors  int `json:"doctors" validate:"gt=0"`
	Days     int `json:"days" validate:"gt=0"`
}

func DefaultScheduleMatrixRequest() ScheduleMatrixRequest {
	return ScheduleMatrixRequest{Patients: 10, Doctors: 3, Days: 5}
}

type BulkCreateAppointmentsRequest struct {
	Appointments []CreateAppointmentRequest `json:"appointments" validate:"required,min=1,dive"`
}

// Response DTOs

type ScheduledAppointmentsResponse struct {
	Created      int64                 `json:"created"`
	Appointments []AppointmentResponse `json:"appointments"`
}

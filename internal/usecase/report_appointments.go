package usecase

import (
	"context"
	"strings"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/query"
)

func appointmentsWithParties() query.Query[entity.Appointment] {
	return query.New[entity.Appointment]().
		Preload("Patient.User").
		Preload("Doctor.User")
}

func (u *reportUsecase) UpcomingAppointments(ctx context.Context, params dto.WindowParams) ([]dto.AppointmentResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	appointments, err := appointmentsWithParties().
		Where("appointments.appointment_date BETWEEN ? AND ?", now, now.AddDate(0, 0, params.Days)).
		OrderBy("appointments.appointment_date ASC").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query upcoming appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

// AppointmentsByInsurer skips appointments falling on a Sunday in UTC.
func (u *reportUsecase) AppointmentsByInsurer(ctx context.Context, params dto.ProviderParams) ([]dto.AppointmentResponse, error) {
	params.Provider = strings.TrimSpace(params.Provider)
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	appointments, err := appointmentsWithParties().
		Scope(query.InsurancePatient.Via("appointments.patient_id", query.C("insurances.provider = ?", params.Provider))).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query appointments by insurer: %+v", err)
		return nil, err
	}

	kept := appointments[:0]
	for _, a := range appointments {
		if a.AppointmentDate.UTC().Weekday() != time.Sunday {
			kept = append(kept, a)
		}
	}
	return converter.AppointmentsToResponses(kept), nil
}

func (u *reportUsecase) ScheduledAppointments(ctx context.Context, params dto.WindowParams) ([]dto.AppointmentResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	appointments, err := appointmentsWithParties().
		Where("appointments.status = ?", entity.AppointmentStatusScheduled).
		Where("appointments.appointment_date BETWEEN ? AND ?", now, now.AddDate(0, 0, params.Days)).
		OrderBy("appointments.appointment_date ASC").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query scheduled appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *reportUsecase) AppointmentsBySpecialization(ctx context.Context, params dto.SearchParams) ([]dto.AppointmentResponse, error) {
	params.Term = strings.TrimSpace(params.Term)
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	appointments, err := appointmentsWithParties().
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Scope(query.Where(query.ContainsFold("doctors.specialization", params.Term))).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query appointments by specialization: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

// RecentPrescriptions windows on the date of the prescription's appointment.
func (u *reportUsecase) RecentPrescriptions(ctx context.Context, params dto.WindowParams) ([]dto.PrescriptionResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	prescriptions, err := query.New[entity.Prescription]().
		Joins("JOIN appointments ON appointments.id = prescriptions.appointment_id").
		Where("appointments.appointment_date BETWEEN ? AND ?", now.AddDate(0, 0, -params.Days), now).
		OrderBy("appointments.appointment_date DESC").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query recent prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionsToResponses(prescriptions), nil
}

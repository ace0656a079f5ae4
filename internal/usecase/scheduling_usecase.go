package usecase

import (
	"context"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/query"
	"hospital-management/internal/service"
	"hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// followUpDelay is how far ahead follow-up appointments are booked.
const followUpDelay = 3 * 24 * time.Hour

// SchedulingUsecase holds every bulk appointment mutation. Each call runs in
// a single transaction and either applies fully or not at all.
type SchedulingUsecase interface {
	// CompletePastAppointments marks every past Scheduled appointment
	// Completed and returns how many changed.
	CompletePastAppointments(ctx context.Context) (*dto.MutationResult, error)
	// ScheduleFollowUps books one appointment at now+3 days for every patient
	// the doctor has seen who has nothing Scheduled with them. Re-running it
	// creates nothing new.
	ScheduleFollowUps(ctx context.Context, doctorID int64) (*dto.ScheduledAppointmentsResponse, error)
	ScheduleMatrix(ctx context.Context, req dto.ScheduleMatrixRequest) (*dto.ScheduledAppointmentsResponse, error)
	BulkCreateAppointments(ctx context.Context, req *dto.BulkCreateAppointmentsRequest) (*dto.ScheduledAppointmentsResponse, error)
}

type schedulingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	validator       *validator.CustomValidator
	now             Clock
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	lock            service.SchedulingLock
	audit           service.AuditService
}

func NewSchedulingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	now Clock,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	lock service.SchedulingLock,
	audit service.AuditService,
) SchedulingUsecase {
	return &schedulingUsecase{
		db:              db,
		log:             log,
		validator:       validator,
		now:             now,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		lock:            lock,
		audit:           audit,
	}
}

func (u *schedulingUsecase) CompletePastAppointments(ctx context.Context) (*dto.MutationResult, error) {
	now := u.now()

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := u.appointmentRepo.UpdateStatusBefore(ctx, tx, now, entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted)
		affected = n
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to complete past appointments: %+v", err)
		return nil, err
	}

	u.audit.LogBulk(ctx, "complete_past", "appointment", affected)
	u.log.Infof("Completed %d past appointments", affected)
	return &dto.MutationResult{Affected: affected}, nil
}

func (u *schedulingUsecase) ScheduleFollowUps(ctx context.Context, doctorID int64) (*dto.ScheduledAppointmentsResponse, error) {
	if doctorID <= 0 {
		return nil, NewValidationError("doctor_id", "doctor_id must be greater than 0")
	}
	now := u.now()

	var created []entity.Appointment
	err := u.lock.WithDoctorLock(ctx, doctorID, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := u.doctorRepo.LockForUpdate(ctx, tx, doctorID); err != nil {
				return notFoundAs(err, ErrDoctorNotFound)
			}

			seen, err := query.AppointmentPatient.Keys(ctx, tx, query.C("appointments.doctor_id = ?", doctorID))
			if err != nil {
				return err
			}
			booked, err := query.AppointmentPatient.Keys(ctx, tx,
				query.C("appointments.doctor_id = ?", doctorID),
				query.C("appointments.status = ?", entity.AppointmentStatusScheduled),
			)
			if err != nil {
				return err
			}

			for _, patientID := range seen.Difference(booked).Slice() {
				created = append(created, entity.Appointment{
					PatientID:       patientID,
					DoctorID:        doctorID,
					AppointmentDate: now.Add(followUpDelay),
					Status:          entity.AppointmentStatusScheduled,
				})
			}
			return u.appointmentRepo.CreateBatch(ctx, tx, created)
		})
	})
	if err != nil {
		u.log.Warnf("Failed to schedule follow-ups for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	u.audit.LogBulk(ctx, "schedule_follow_ups", "appointment", int64(len(created)))
	return scheduled(created), nil
}

// ScheduleMatrix books every pairing of the first Patients patients and first
// Doctors doctors, by id, Days days from now.
func (u *schedulingUsecase) ScheduleMatrix(ctx context.Context, req dto.ScheduleMatrixRequest) (*dto.ScheduledAppointmentsResponse, error) {
	if err := validateParams(u.validator, &req); err != nil {
		return nil, err
	}
	now := u.now()
	at := now.AddDate(0, 0, req.Days)

	var created []entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patients, err := query.New[entity.Patient]().Limit(req.Patients).IDs(ctx, tx)
		if err != nil {
			return err
		}
		doctors, err := query.New[entity.Doctor]().Limit(req.Doctors).IDs(ctx, tx)
		if err != nil {
			return err
		}

		for _, patientID := range patients.Slice() {
			for _, doctorID := range doctors.Slice() {
				created = append(created, entity.Appointment{
					PatientID:       patientID,
					DoctorID:        doctorID,
					AppointmentDate: at,
					Status:          entity.AppointmentStatusScheduled,
				})
			}
		}
		return u.appointmentRepo.CreateBatch(ctx, tx, created)
	})
	if err != nil {
		u.log.Warnf("Failed to schedule appointment matrix: %+v", err)
		return nil, err
	}

	u.audit.LogBulk(ctx, "schedule_matrix", "appointment", int64(len(created)))
	return scheduled(created), nil
}

func (u *schedulingUsecase) BulkCreateAppointments(ctx context.Context, req *dto.BulkCreateAppointmentsRequest) (*dto.ScheduledAppointmentsResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	appointments := make([]entity.Appointment, len(req.Appointments))
	for i, r := range req.Appointments {
		appointments[i] = appointmentFromRequest(&r)
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return u.appointmentRepo.CreateBatch(ctx, tx, appointments)
	})
	if err != nil {
		u.log.Warnf("Failed to bulk create appointments: %+v", err)
		return nil, err
	}

	u.audit.LogBulk(ctx, "bulk_create", "appointment", int64(len(appointments)))
	return scheduled(appointments), nil
}

func appointmentFromRequest(req *dto.CreateAppointmentRequest) entity.Appointment {
	status := entity.AppointmentStatusScheduled
	if req.Status != "" {
		status = entity.AppointmentStatus(req.Status)
	}
	return entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Status:          status,
		Notes:           req.Notes,
	}
}

func scheduled(appointments []entity.Appointment) *dto.ScheduledAppointmentsResponse {
	return &dto.ScheduledAppointmentsResponse{
		Created:      int64(len(appointments)),
		Appointments: converter.AppointmentsToResponses(appointments),
	}
}

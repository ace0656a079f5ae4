package usecase

import (
	"context"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.AppointmentResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type appointmentUsecase struct {
	crudBase
	appointmentRepo repository.AppointmentRepository
	audit           service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	appointmentRepo repository.AppointmentRepository,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		crudBase:        crudBase{db: db, log: log, validator: validator},
		appointmentRepo: appointmentRepo,
		audit:           audit,
	}
}

// Create fails with NotFound when the patient or doctor does not exist.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	appointment := appointmentFromRequest(req)
	if err := u.appointmentRepo.Create(ctx, u.db, &appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(&appointment)
	u.audit.LogCreate(ctx, "appointment", appointment.ID, response)
	return response, nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.AppointmentResponse], error) {
	return listPage(ctx, u.crudBase, u.appointmentRepo, req, converter.AppointmentsToResponses)
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	appointment, err := findOne(ctx, u.db, u.appointmentRepo, id, ErrAppointmentNotFound)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	appointment, err := findOne(ctx, u.db, u.appointmentRepo, id, ErrAppointmentNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.AppointmentToResponse(appointment)

	if req.AppointmentDate != nil {
		appointment.AppointmentDate = *req.AppointmentDate
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := u.appointmentRepo.Update(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, notFoundAs(err, ErrAppointmentNotFound)
	}

	response := converter.AppointmentToResponse(appointment)
	u.audit.LogUpdate(ctx, "appointment", id, old, response)
	return response, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id int64) error {
	appointment, err := findOne(ctx, u.db, u.appointmentRepo, id, ErrAppointmentNotFound)
	if err != nil {
		return err
	}

	if err := u.appointmentRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return notFoundAs(err, ErrAppointmentNotFound)
	}

	u.audit.LogDelete(ctx, "appointment", id, converter.AppointmentToResponse(appointment))
	return nil
}

package usecase

import (
	"context"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	// Create inserts the user and the patient profile in one transaction.
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.PatientResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.PatientResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	// Delete removes the profile and everything it owns; the user stays.
	Delete(ctx context.Context, id int64) error
}

type patientUsecase struct {
	crudBase
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	audit       service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		crudBase:    crudBase{db: db, log: log, validator: validator},
		userRepo:    userRepo,
		patientRepo: patientRepo,
		audit:       audit,
	}
}

// parseDate reads a validated YYYY-MM-DD value as UTC midnight.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return nil, NewValidationError(field, field+" must be a date in 2006-01-02 format")
	}
	return &t, nil
}

func parseGender(value string) *entity.Gender {
	if value == "" {
		return nil
	}
	g := entity.Gender(value)
	return &g
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}
	dob, err := parseDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	user := newUser(&req.User)
	patient := &entity.Patient{
		DateOfBirth: dob,
		Gender:      parseGender(req.Gender),
		Address:     req.Address,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		patient.UserID = user.ID
		return u.patientRepo.Create(ctx, tx, patient)
	})
	if err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}
	patient.User = *user

	response := converter.PatientToResponse(patient)
	u.audit.LogCreate(ctx, "patient", patient.ID, response)
	return response, nil
}

func (u *patientUsecase) GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.PatientResponse], error) {
	return listPage(ctx, u.crudBase, u.patientRepo, req, converter.PatientsToResponses)
}

func (u *patientUsecase) GetByID(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := findOne(ctx, u.db, u.patientRepo, id, ErrPatientNotFound)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	patient, err := findOne(ctx, u.db, u.patientRepo, id, ErrPatientNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.PatientToResponse(patient)

	if req.DateOfBirth != nil {
		dob, err := parseDate("date_of_birth", *req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != nil {
		patient.Gender = parseGender(*req.Gender)
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}

	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		return nil, notFoundAs(err, ErrPatientNotFound)
	}

	response := converter.PatientToResponse(patient)
	u.audit.LogUpdate(ctx, "patient", id, old, response)
	return response, nil
}

func (u *patientUsecase) Delete(ctx context.Context, id int64) error {
	patient, err := findOne(ctx, u.db, u.patientRepo, id, ErrPatientNotFound)
	if err != nil {
		return err
	}

	if err := u.patientRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return notFoundAs(err, ErrPatientNotFound)
	}

	u.audit.LogDelete(ctx, "patient", id, converter.PatientToResponse(patient))
	return nil
}

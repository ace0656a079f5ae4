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

type DoctorUsecase interface {
	// Create inserts the user and the doctor profile in one transaction.
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.DoctorResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.DoctorResponse, error)
	// Update moving a doctor out of a department it heads also clears the
	// head.
	Update(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int64) error
}

type doctorUsecase struct {
	crudBase
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
	deptRepo   repository.DepartmentRepository
	audit      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	deptRepo repository.DepartmentRepository,
	audit service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		crudBase:   crudBase{db: db, log: log, validator: validator},
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		deptRepo:   deptRepo,
		audit:      audit,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	user := newUser(&req.User)
	doctor := &entity.Doctor{
		Specialization: req.Specialization,
		DepartmentID:   req.DepartmentID,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if doctor.DepartmentID != nil {
			if _, err := u.deptRepo.FindByID(ctx, tx, *doctor.DepartmentID); err != nil {
				return notFoundAs(err, ErrDepartmentNotFound)
			}
		}
		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		doctor.UserID = user.ID
		return u.doctorRepo.Create(ctx, tx, doctor)
	})
	if err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return u.reload(ctx, doctor.ID, func(r *dto.DoctorResponse) {
		u.audit.LogCreate(ctx, "doctor", doctor.ID, r)
	})
}

func (u *doctorUsecase) GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.DoctorResponse], error) {
	return listPage(ctx, u.crudBase, u.doctorRepo, req, converter.DoctorsToResponses)
}

func (u *doctorUsecase) GetByID(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	doctor, err := findOne(ctx, u.db, u.doctorRepo, id, ErrDoctorNotFound)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	doctor, err := findOne(ctx, u.db, u.doctorRepo, id, ErrDoctorNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.DoctorToResponse(doctor)

	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	moved := false
	if req.DepartmentID != nil {
		var next *int64
		if *req.DepartmentID != 0 {
			next = req.DepartmentID
		}
		moved = !sameID(doctor.DepartmentID, next)
		doctor.DepartmentID = next
		doctor.Department = nil
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if moved && doctor.DepartmentID != nil {
			if _, err := u.deptRepo.FindByID(ctx, tx, *doctor.DepartmentID); err != nil {
				return notFoundAs(err, ErrDepartmentNotFound)
			}
		}
		if moved {
			if err := u.deptRepo.ClearHead(ctx, tx, id); err != nil {
				return err
			}
		}
		return notFoundAs(u.doctorRepo.Update(ctx, tx, doctor), ErrDoctorNotFound)
	})
	if err != nil {
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	return u.reload(ctx, id, func(r *dto.DoctorResponse) {
		u.audit.LogUpdate(ctx, "doctor", id, old, r)
	})
}

func (u *doctorUsecase) Delete(ctx context.Context, id int64) error {
	doctor, err := findOne(ctx, u.db, u.doctorRepo, id, ErrDoctorNotFound)
	if err != nil {
		return err
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return u.doctorRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return notFoundAs(err, ErrDoctorNotFound)
	}

	u.audit.LogDelete(ctx, "doctor", id, converter.DoctorToResponse(doctor))
	return nil
}

// reload reads the doctor back with its user and department.
func (u *doctorUsecase) reload(ctx context.Context, id int64, audit func(*dto.DoctorResponse)) (*dto.DoctorResponse, error) {
	doctor, err := findOne(ctx, u.db, u.doctorRepo, id, ErrDoctorNotFound)
	if err != nil {
		u.log.Warnf("Failed to reload doctor %d: %+v", id, err)
		return nil, err
	}
	response := converter.DoctorToResponse(doctor)
	audit(response)
	return response, nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

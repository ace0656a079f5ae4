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

type DepartmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.DepartmentResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.DepartmentResponse, error)
	// Update sets the head only to a doctor of the same department.
	Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	// Delete removes the department and its doctors.
	Delete(ctx context.Context, id int64) error
}

type departmentUsecase struct {
	crudBase
	deptRepo   repository.DepartmentRepository
	doctorRepo repository.DoctorRepository
	audit      service.AuditService
}

func NewDepartmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	deptRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorRepository,
	audit service.AuditService,
) DepartmentUsecase {
	return &departmentUsecase{
		crudBase:   crudBase{db: db, log: log, validator: validator},
		deptRepo:   deptRepo,
		doctorRepo: doctorRepo,
		audit:      audit,
	}
}

func (u *departmentUsecase) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	department := &entity.Department{Name: req.Name}
	if err := u.deptRepo.Create(ctx, u.db, department); err != nil {
		u.log.Warnf("Failed to create department %q: %+v", req.Name, err)
		return nil, err
	}

	response := converter.DepartmentToResponse(department)
	u.audit.LogCreate(ctx, "department", department.ID, response)
	return response, nil
}

func (u *departmentUsecase) GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.DepartmentResponse], error) {
	return listPage(ctx, u.crudBase, u.deptRepo, req, converter.DepartmentsToResponses)
}

func (u *departmentUsecase) GetByID(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	department, err := findOne(ctx, u.db, u.deptRepo, id, ErrDepartmentNotFound)
	if err != nil {
		return nil, err
	}
	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	var old, response *dto.DepartmentResponse
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		department, err := findOne(ctx, tx, u.deptRepo, id, ErrDepartmentNotFound)
		if err != nil {
			return err
		}
		old = converter.DepartmentToResponse(department)

		if req.Name != nil {
			department.Name = *req.Name
		}
		if req.HeadDoctorID != nil {
			if *req.HeadDoctorID == 0 {
				department.HeadDoctorID = nil
			} else {
				head, err := findOne(ctx, tx, u.doctorRepo, *req.HeadDoctorID, ErrDoctorNotFound)
				if err != nil {
					return err
				}
				if head.DepartmentID == nil || *head.DepartmentID != department.ID {
					return ErrHeadNotInDepartment
				}
				department.HeadDoctorID = &head.ID
			}
		}

		if err := u.deptRepo.Update(ctx, tx, department); err != nil {
			return notFoundAs(err, ErrDepartmentNotFound)
		}

		department, err = findOne(ctx, tx, u.deptRepo, id, ErrDepartmentNotFound)
		if err != nil {
			return err
		}
		response = converter.DepartmentToResponse(department)
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to update department %d: %+v", id, err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, "department", id, old, response)
	return response, nil
}

func (u *departmentUsecase) Delete(ctx context.Context, id int64) error {
	department, err := findOne(ctx, u.db, u.deptRepo, id, ErrDepartmentNotFound)
	if err != nil {
		return err
	}

	if err := u.deptRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete department %d: %+v", id, err)
		return notFoundAs(err, ErrDepartmentNotFound)
	}

	u.audit.LogDelete(ctx, "department", id, converter.DepartmentToResponse(department))
	return nil
}

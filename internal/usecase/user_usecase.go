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

type UserUsecase interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.UserResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete removes the user together with its patient or doctor profile.
	Delete(ctx context.Context, id int64) error
}

type userUsecase struct {
	crudBase
	userRepo repository.UserRepository
	audit    service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	userRepo repository.UserRepository,
	audit service.AuditService,
) UserUsecase {
	return &userUsecase{
		crudBase: crudBase{db: db, log: log, validator: validator},
		userRepo: userRepo,
		audit:    audit,
	}
}

func newUser(req *dto.CreateUserRequest) *entity.User {
	return &entity.User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	user := newUser(req)
	if err := u.userRepo.Create(ctx, u.db, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user)
	u.audit.LogCreate(ctx, "user", user.ID, response)
	return response, nil
}

func (u *userUsecase) GetAll(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.UserResponse], error) {
	return listPage(ctx, u.crudBase, u.userRepo, req, converter.UsersToResponses)
}

func (u *userUsecase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := findOne(ctx, u.db, u.userRepo, id, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	user, err := findOne(ctx, u.db, u.userRepo, id, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.UserToResponse(user)

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.IsActive != nil {
		user.IsActive = req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := u.userRepo.Update(ctx, u.db, user); err != nil {
		u.log.Warnf("Failed to update user %d: %+v", id, err)
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	response := converter.UserToResponse(user)
	u.audit.LogUpdate(ctx, "user", id, old, response)
	return response, nil
}

func (u *userUsecase) Delete(ctx context.Context, id int64) error {
	user, err := findOne(ctx, u.db, u.userRepo, id, ErrUserNotFound)
	if err != nil {
		return err
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return u.userRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		u.log.Warnf("Failed to delete user %d: %+v", id, err)
		return notFoundAs(err, ErrUserNotFound)
	}

	u.audit.LogDelete(ctx, "user", id, converter.UserToResponse(user))
	return nil
}

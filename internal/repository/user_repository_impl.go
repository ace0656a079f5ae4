package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct {
	baseRepository[entity.User]
}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{baseRepository: newBaseRepository[entity.User]()}
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Delete removes the user and, through the cascade, any doctor profile.
// Departments headed by that doctor are released first.
func (r *userRepository) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	doctorIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&entity.Doctor{}).Select("id").Where("user_id = ?", id)
	err := db.WithContext(ctx).Model(&entity.Department{}).
		Where("head_doctor_id IN (?)", doctorIDs).
		Update("head_doctor_id", nil).Error
	if err != nil {
		return translateError(err)
	}
	return r.baseRepository.Delete(ctx, db, id)
}

package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Repository[entity.User]
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
}

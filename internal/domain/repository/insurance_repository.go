package repository

import "hospital-management/internal/domain/entity"

type InsuranceRepository interface {
	Repository[entity.Insurance]
}

package repository

import "hospital-management/internal/domain/entity"

type PrescriptionRepository interface {
	Repository[entity.Prescription]
}

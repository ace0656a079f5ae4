package repository

import "hospital-management/internal/domain/entity"

type SurgeryRepository interface {
	Repository[entity.Surgery]
}

package repository

import "hospital-management/internal/domain/entity"

type PatientRepository interface {
	Repository[entity.Patient]
}

package repository

import "hospital-management/internal/domain/entity"

type PatientDoctorRepository interface {
	Repository[entity.PatientDoctor]
}

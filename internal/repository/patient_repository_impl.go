package repository

import (
	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"
)

type patientRepository struct {
	baseRepository[entity.Patient]
}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{baseRepository: newBaseRepository[entity.Patient]("User")}
}

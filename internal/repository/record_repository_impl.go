package repository

import (
	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"
)

type insuranceRepository struct {
	baseRepository[entity.Insurance]
}

func NewInsuranceRepository() domainRepo.InsuranceRepository {
	return &insuranceRepository{baseRepository: newBaseRepository[entity.Insurance]("Patient.User")}
}

type prescriptionRepository struct {
	baseRepository[entity.Prescription]
}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{baseRepository: newBaseRepository[entity.Prescription]("Patient.User", "Doctor.User")}
}

type surgeryRepository struct {
	baseRepository[entity.Surgery]
}

func NewSurgeryRepository() domainRepo.SurgeryRepository {
	return &surgeryRepository{baseRepository: newBaseRepository[entity.Surgery]("Patient.User", "Doctor.User")}
}

type patientDoctorRepository struct {
	baseRepository[entity.PatientDoctor]
}

func NewPatientDoctorRepository() domainRepo.PatientDoctorRepository {
	return &patientDoctorRepository{baseRepository: newBaseRepository[entity.PatientDoctor]("Patient.User", "Doctor.User")}
}

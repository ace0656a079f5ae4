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

// RecordUsecase manages the records hanging off patients: insurance,
// prescriptions, surgeries and patient-doctor relationships.
type RecordUsecase interface {
	CreateInsurance(ctx context.Context, req *dto.CreateInsuranceRequest) (*dto.InsuranceResponse, error)
	GetInsurances(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.InsuranceResponse], error)
	GetInsurance(ctx context.Context, id int64) (*dto.InsuranceResponse, error)
	UpdateInsurance(ctx context.Context, id int64, req *dto.UpdateInsuranceRequest) (*dto.InsuranceResponse, error)
	DeleteInsurance(ctx context.Context, id int64) error

	// CreatePrescription fills a missing patient or doctor from the
	// appointment and rejects a pair that differs from it.
	CreatePrescription(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetPrescriptions(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.PrescriptionResponse], error)
	GetPrescription(ctx context.Context, id int64) (*dto.PrescriptionResponse, error)
	UpdatePrescription(ctx context.Context, id int64, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	DeletePrescription(ctx context.Context, id int64) error

	CreateSurgery(ctx context.Context, req *dto.CreateSurgeryRequest) (*dto.SurgeryResponse, error)
	GetSurgeries(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.SurgeryResponse], error)
	GetSurgery(ctx context.Context, id int64) (*dto.SurgeryResponse, error)
	UpdateSurgery(ctx context.Context, id int64, req *dto.UpdateSurgeryRequest) (*dto.SurgeryResponse, error)
	DeleteSurgery(ctx context.Context, id int64) error

	CreateRelationship(ctx context.Context, req *dto.CreateRelationshipRequest) (*dto.RelationshipResponse, error)
	GetRelationships(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.RelationshipResponse], error)
	GetRelationship(ctx context.Context, id int64) (*dto.RelationshipResponse, error)
	UpdateRelationship(ctx context.Context, id int64, req *dto.UpdateRelationshipRequest) (*dto.RelationshipResponse, error)
	DeleteRelationship(ctx context.Context, id int64) error
}

type recordUsecase struct {
	crudBase
	insuranceRepo    repository.InsuranceRepository
	prescriptionRepo repository.PrescriptionRepository
	surgeryRepo      repository.SurgeryRepository
	relationshipRepo repository.PatientDoctorRepository
	appointmentRepo  repository.AppointmentRepository
	audit            service.AuditService
}

func NewRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	insuranceRepo repository.InsuranceRepository,
	prescriptionRepo repository.PrescriptionRepository,
	surgeryRepo repository.SurgeryRepository,
	relationshipRepo repository.PatientDoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	audit service.AuditService,
) RecordUsecase {
	return &recordUsecase{
		crudBase:         crudBase{db: db, log: log, validator: validator},
		insuranceRepo:    insuranceRepo,
		prescriptionRepo: prescriptionRepo,
		surgeryRepo:      surgeryRepo,
		relationshipRepo: relationshipRepo,
		appointmentRepo:  appointmentRepo,
		audit:            audit,
	}
}

// Insurance

// CreateInsurance fails with a constraint violation when the patient is
// already insured.
func (u *recordUsecase) CreateInsurance(ctx context.Context, req *dto.CreateInsuranceRequest) (*dto.InsuranceResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	insurance := &entity.Insurance{
		PatientID:       req.PatientID,
		Provider:        req.Provider,
		PolicyNumber:    req.PolicyNumber,
		CoverageDetails: req.CoverageDetails,
	}
	if err := u.insuranceRepo.Create(ctx, u.db, insurance); err != nil {
		u.log.Warnf("Failed to create insurance: %+v", err)
		return nil, notFoundAs(err, ErrPatientNotFound)
	}

	response := converter.InsuranceToResponse(insurance)
	u.audit.LogCreate(ctx, "insurance", insurance.ID, response)
	return response, nil
}

func (u *recordUsecase) GetInsurances(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.InsuranceResponse], error) {
	return listPage(ctx, u.crudBase, u.insuranceRepo, req, converter.InsurancesToResponses)
}

func (u *recordUsecase) GetInsurance(ctx context.Context, id int64) (*dto.InsuranceResponse, error) {
	insurance, err := findOne(ctx, u.db, u.insuranceRepo, id, ErrInsuranceNotFound)
	if err != nil {
		return nil, err
	}
	return converter.InsuranceToResponse(insurance), nil
}

func (u *recordUsecase) UpdateInsurance(ctx context.Context, id int64, req *dto.UpdateInsuranceRequest) (*dto.InsuranceResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	insurance, err := findOne(ctx, u.db, u.insuranceRepo, id, ErrInsuranceNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.InsuranceToResponse(insurance)

	if req.Provider != nil {
		insurance.Provider = *req.Provider
	}
	if req.PolicyNumber != nil {
		insurance.PolicyNumber = *req.PolicyNumber
	}
	if req.CoverageDetails != nil {
		insurance.CoverageDetails = *req.CoverageDetails
	}

	if err := u.insuranceRepo.Update(ctx, u.db, insurance); err != nil {
		u.log.Warnf("Failed to update insurance %d: %+v", id, err)
		return nil, notFoundAs(err, ErrInsuranceNotFound)
	}

	response := converter.InsuranceToResponse(insurance)
	u.audit.LogUpdate(ctx, "insurance", id, old, response)
	return response, nil
}

func (u *recordUsecase) DeleteInsurance(ctx context.Context, id int64) error {
	if err := u.insuranceRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete insurance %d: %+v", id, err)
		return notFoundAs(err, ErrInsuranceNotFound)
	}
	u.audit.LogDelete(ctx, "insurance", id, nil)
	return nil
}

// Prescriptions

func (u *recordUsecase) CreatePrescription(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		AppointmentID:  req.AppointmentID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		MedicineDetail: req.MedicineDetail,
		Instructions:   req.Instructions,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := findOne(ctx, tx, u.appointmentRepo, req.AppointmentID, ErrAppointmentNotFound)
		if err != nil {
			return err
		}
		if prescription.PatientID == 0 {
			prescription.PatientID = appointment.PatientID
		}
		if prescription.DoctorID == 0 {
			prescription.DoctorID = appointment.DoctorID
		}
		if !prescription.MatchesAppointment(appointment) {
			return ErrPrescriptionMismatch
		}
		return u.prescriptionRepo.Create(ctx, tx, prescription)
	})
	if err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	response := converter.PrescriptionToResponse(prescription)
	u.audit.LogCreate(ctx, "prescription", prescription.ID, response)
	return response, nil
}

func (u *recordUsecase) GetPrescriptions(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.PrescriptionResponse], error) {
	return listPage(ctx, u.crudBase, u.prescriptionRepo, req, converter.PrescriptionsToResponses)
}

func (u *recordUsecase) GetPrescription(ctx context.Context, id int64) (*dto.PrescriptionResponse, error) {
	prescription, err := findOne(ctx, u.db, u.prescriptionRepo, id, ErrPrescriptionNotFound)
	if err != nil {
		return nil, err
	}
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *recordUsecase) UpdatePrescription(ctx context.Context, id int64, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	prescription, err := findOne(ctx, u.db, u.prescriptionRepo, id, ErrPrescriptionNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.PrescriptionToResponse(prescription)

	if req.MedicineDetail != nil {
		prescription.MedicineDetail = *req.MedicineDetail
	}
	if req.Instructions != nil {
		prescription.Instructions = *req.Instructions
	}

	if err := u.prescriptionRepo.Update(ctx, u.db, prescription); err != nil {
		u.log.Warnf("Failed to update prescription %d: %+v", id, err)
		return nil, notFoundAs(err, ErrPrescriptionNotFound)
	}

	response := converter.PrescriptionToResponse(prescription)
	u.audit.LogUpdate(ctx, "prescription", id, old, response)
	return response, nil
}

func (u *recordUsecase) DeletePrescription(ctx context.Context, id int64) error {
	if err := u.prescriptionRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete prescription %d: %+v", id, err)
		return notFoundAs(err, ErrPrescriptionNotFound)
	}
	u.audit.LogDelete(ctx, "prescription", id, nil)
	return nil
}

// Surgeries

func (u *recordUsecase) CreateSurgery(ctx context.Context, req *dto.CreateSurgeryRequest) (*dto.SurgeryResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	surgery := &entity.Surgery{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SurgeryDate: req.SurgeryDate,
		SurgeryType: req.SurgeryType,
		Notes:       req.Notes,
	}
	if err := u.surgeryRepo.Create(ctx, u.db, surgery); err != nil {
		u.log.Warnf("Failed to create surgery: %+v", err)
		return nil, err
	}

	response := converter.SurgeryToResponse(surgery)
	u.audit.LogCreate(ctx, "surgery", surgery.ID, response)
	return response, nil
}

func (u *recordUsecase) GetSurgeries(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.SurgeryResponse], error) {
	return listPage(ctx, u.crudBase, u.surgeryRepo, req, converter.SurgeriesToResponses)
}

func (u *recordUsecase) GetSurgery(ctx context.Context, id int64) (*dto.SurgeryResponse, error) {
	surgery, err := findOne(ctx, u.db, u.surgeryRepo, id, ErrSurgeryNotFound)
	if err != nil {
		return nil, err
	}
	return converter.SurgeryToResponse(surgery), nil
}

func (u *recordUsecase) UpdateSurgery(ctx context.Context, id int64, req *dto.UpdateSurgeryRequest) (*dto.SurgeryResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	surgery, err := findOne(ctx, u.db, u.surgeryRepo, id, ErrSurgeryNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.SurgeryToResponse(surgery)

	if req.SurgeryDate != nil {
		surgery.SurgeryDate = *req.SurgeryDate
	}
	if req.SurgeryType != nil {
		surgery.SurgeryType = *req.SurgeryType
	}
	if req.Notes != nil {
		surgery.Notes = *req.Notes
	}

	if err := u.surgeryRepo.Update(ctx, u.db, surgery); err != nil {
		u.log.Warnf("Failed to update surgery %d: %+v", id, err)
		return nil, notFoundAs(err, ErrSurgeryNotFound)
	}

	response := converter.SurgeryToResponse(surgery)
	u.audit.LogUpdate(ctx, "surgery", id, old, response)
	return response, nil
}

func (u *recordUsecase) DeleteSurgery(ctx context.Context, id int64) error {
	if err := u.surgeryRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete surgery %d: %+v", id, err)
		return notFoundAs(err, ErrSurgeryNotFound)
	}
	u.audit.LogDelete(ctx, "surgery", id, nil)
	return nil
}

// Relationships

// CreateRelationship defaults to primary care; a second link for the same
// pair is a constraint violation.
func (u *recordUsecase) CreateRelationship(ctx context.Context, req *dto.CreateRelationshipRequest) (*dto.RelationshipResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	relationship := &entity.PatientDoctor{
		PatientID:        req.PatientID,
		DoctorID:         req.DoctorID,
		RelationshipType: entity.RelationshipType(req.RelationshipType),
	}
	if err := u.relationshipRepo.Create(ctx, u.db, relationship); err != nil {
		u.log.Warnf("Failed to create relationship: %+v", err)
		return nil, err
	}

	response := converter.RelationshipToResponse(relationship)
	u.audit.LogCreate(ctx, "relationship", relationship.ID, response)
	return response, nil
}

func (u *recordUsecase) GetRelationships(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[dto.RelationshipResponse], error) {
	return listPage(ctx, u.crudBase, u.relationshipRepo, req, converter.RelationshipsToResponses)
}

func (u *recordUsecase) GetRelationship(ctx context.Context, id int64) (*dto.RelationshipResponse, error) {
	relationship, err := findOne(ctx, u.db, u.relationshipRepo, id, ErrRelationshipNotFound)
	if err != nil {
		return nil, err
	}
	return converter.RelationshipToResponse(relationship), nil
}

func (u *recordUsecase) UpdateRelationship(ctx context.Context, id int64, req *dto.UpdateRelationshipRequest) (*dto.RelationshipResponse, error) {
	if err := validateParams(u.validator, req); err != nil {
		return nil, err
	}

	relationship, err := findOne(ctx, u.db, u.relationshipRepo, id, ErrRelationshipNotFound)
	if err != nil {
		return nil, err
	}
	old := converter.RelationshipToResponse(relationship)

	relationship.RelationshipType = entity.RelationshipType(req.RelationshipType)
	if err := u.relationshipRepo.Update(ctx, u.db, relationship); err != nil {
		u.log.Warnf("Failed to update relationship %d: %+v", id, err)
		return nil, notFoundAs(err, ErrRelationshipNotFound)
	}

	response := converter.RelationshipToResponse(relationship)
	u.audit.LogUpdate(ctx, "relationship", id, old, response)
	return response, nil
}

func (u *recordUsecase) DeleteRelationship(ctx context.Context, id int64) error {
	if err := u.relationshipRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete relationship %d: %+v", id, err)
		return notFoundAs(err, ErrRelationshipNotFound)
	}
	u.audit.LogDelete(ctx, "relationship", id, nil)
	return nil
}

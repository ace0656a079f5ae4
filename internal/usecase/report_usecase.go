package usecase

import (
	"context"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/query"
	"hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportUsecase exposes every read-only report. Results are empty, never an
// error, when nothing matches; unknown ids in parameters behave the same way.
type ReportUsecase interface {
	// Appointments
	UpcomingAppointments(ctx context.Context, params dto.WindowParams) ([]dto.AppointmentResponse, error)
	AppointmentsByInsurer(ctx context.Context, params dto.ProviderParams) ([]dto.AppointmentResponse, error)
	ScheduledAppointments(ctx context.Context, params dto.WindowParams) ([]dto.AppointmentResponse, error)
	AppointmentsBySpecialization(ctx context.Context, params dto.SearchParams) ([]dto.AppointmentResponse, error)
	RecentPrescriptions(ctx context.Context, params dto.WindowParams) ([]dto.PrescriptionResponse, error)

	// Patients
	UninsuredRecentPatients(ctx context.Context, params dto.WindowParams) ([]dto.PatientResponse, error)
	RecentPatientsWithPrescriptions(ctx context.Context, params dto.WindowParams) ([]dto.PatientPrescriptionsResponse, error)
	PatientsWithAppointmentOrSurgery(ctx context.Context) ([]dto.PatientResponse, error)
	PatientsWithAppointmentAndPrescription(ctx context.Context) ([]dto.PatientResponse, error)
	PatientsWithAppointmentWithoutPrescription(ctx context.Context) ([]dto.PatientResponse, error)
	UninsuredMultiDoctorPatients(ctx context.Context, params dto.MinCountParams) ([]dto.PatientDoctorsResponse, error)
	PatientsByMedicine(ctx context.Context, params dto.SearchParams) ([]dto.PatientResponse, error)
	InsuredSurgicalPatients(ctx context.Context) ([]dto.InsuredSurgicalPatientResponse, error)
	PatientsWithAppointmentWithoutSurgery(ctx context.Context) ([]dto.PatientResponse, error)
	PatientsWithAppointmentPrescriptionAndSurgery(ctx context.Context) ([]dto.PatientResponse, error)
	PatientsByLastName(ctx context.Context, params dto.PrefixParams) ([]dto.PatientResponse, error)
	PatientsWithoutPhone(ctx context.Context) ([]dto.PatientResponse, error)
	PatientsWithSurgeryWithoutPrescription(ctx context.Context) ([]dto.PatientResponse, error)

	// Doctors
	BusyDoctors(ctx context.Context, params dto.BusyDoctorsParams) ([]dto.DoctorCountResponse, error)
	ProlificPrescribers(ctx context.Context, params dto.MinCountParams) ([]dto.DoctorCountResponse, error)
	ActiveSurgeonIDs(ctx context.Context, params dto.ActiveSurgeonsParams) ([]int64, error)
	SpecializationsByDoctorCount(ctx context.Context) ([]dto.SpecializationCountResponse, error)
	DoctorsByPatientRange(ctx context.Context, params dto.PatientRangeParams) ([]dto.DoctorCountResponse, error)
	DoctorAppointmentCounts(ctx context.Context) ([]dto.DoctorCountResponse, error)
	TopSurgeon(ctx context.Context) (*dto.DoctorCountResponse, error)
	RepeatVisits(ctx context.Context, params dto.MinCountParams) ([]dto.RepeatVisitResponse, error)
	TopDoctorsByPatients(ctx context.Context, params dto.LimitParams) ([]dto.DoctorCountResponse, error)

	// Departments
	LeaderlessDepartments(ctx context.Context, params dto.MinCountParams) ([]dto.DepartmentCountResponse, error)
	DepartmentsByDoctorCount(ctx context.Context) ([]dto.DepartmentCountResponse, error)
	DepartmentHeads(ctx context.Context) ([]dto.DepartmentResponse, error)
	DepartmentSurgeryCounts(ctx context.Context) ([]dto.DepartmentCountResponse, error)
	StaffedDepartments(ctx context.Context, params dto.MinCountParams) ([]dto.DepartmentCountResponse, error)

	// Aggregates
	ActiveInsuranceProviders(ctx context.Context) ([]string, error)
	SurgicalOnlyAverageAge(ctx context.Context) (*dto.AverageAgeResponse, error)
	PatientAgeExtremes(ctx context.Context) (*dto.AgeExtremesResponse, error)
	PopularInsuranceProviders(ctx context.Context, params dto.MinCountParams) ([]dto.ProviderCountResponse, error)
	GenderCounts(ctx context.Context) (*dto.GenderCountResponse, error)
	MostPrescribedMedicine(ctx context.Context) (*dto.MedicineCountResponse, error)
	PatientAgeStats(ctx context.Context) (*dto.AgeStatsResponse, error)
}

type reportUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	validator   *validator.CustomValidator
	now         Clock
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	deptRepo    repository.DepartmentRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	now Clock,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	deptRepo repository.DepartmentRepository,
) ReportUsecase {
	return &reportUsecase{
		db:          db,
		log:         log,
		validator:   validator,
		now:         now,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		deptRepo:    deptRepo,
	}
}

// patientsByIDs loads patients with their users, ordered by id.
func (u *reportUsecase) patientsByIDs(ctx context.Context, ids query.IDSet) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindByIDs(ctx, u.db, ids.Slice())
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *reportUsecase) patientMap(ctx context.Context, ids []int64) (map[int64]*entity.Patient, error) {
	patients, err := u.patientRepo.FindByIDs(ctx, u.db, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]*entity.Patient, len(patients))
	for i := range patients {
		out[patients[i].ID] = &patients[i]
	}
	return out, nil
}

func (u *reportUsecase) doctorMap(ctx context.Context, ids []int64) (map[int64]*entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindByIDs(ctx, u.db, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]*entity.Doctor, len(doctors))
	for i := range doctors {
		out[doctors[i].ID] = &doctors[i]
	}
	return out, nil
}

// doctorCounts attaches doctors to per-doctor counts, keeping count order.
func (u *reportUsecase) doctorCounts(ctx context.Context, counts []query.Count) ([]dto.DoctorCountResponse, error) {
	doctors, err := u.doctorMap(ctx, query.CountIDs(counts).Slice())
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, err
	}

	out := make([]dto.DoctorCountResponse, 0, len(counts))
	for _, c := range counts {
		if d, ok := doctors[c.ID]; ok {
			out = append(out, dto.DoctorCountResponse{Doctor: *converter.DoctorToResponse(d), Count: c.Count})
		}
	}
	return out, nil
}

// departmentCounts attaches departments to per-department counts, keeping
// count order.
func (u *reportUsecase) departmentCounts(ctx context.Context, counts []query.Count) ([]dto.DepartmentCountResponse, error) {
	departments, err := u.deptRepo.FindByIDs(ctx, u.db, query.CountIDs(counts).Slice())
	if err != nil {
		u.log.Warnf("Failed to load departments: %+v", err)
		return nil, err
	}
	byID := make(map[int64]*entity.Department, len(departments))
	for i := range departments {
		byID[departments[i].ID] = &departments[i]
	}

	out := make([]dto.DepartmentCountResponse, 0, len(counts))
	for _, c := range counts {
		if d, ok := byID[c.ID]; ok {
			out = append(out, dto.DepartmentCountResponse{Department: *converter.DepartmentToResponse(d), Count: c.Count})
		}
	}
	return out, nil
}

func threshold(t query.Threshold) *query.Threshold {
	return &t
}

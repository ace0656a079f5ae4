package usecase_test

import (
	"testing"
	"time"

	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/testutil"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/validator"

	"gorm.io/gorm"
)

// now is a Saturday; the next day is a Sunday.
var now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type harness struct {
	db *gorm.DB
	f  *testutil.Fixtures

	reports      usecase.ReportUsecase
	scheduling   usecase.SchedulingUsecase
	users        usecase.UserUsecase
	patients     usecase.PatientUsecase
	doctors      usecase.DoctorUsecase
	departments  usecase.DepartmentUsecase
	appointments usecase.AppointmentUsecase
	records      usecase.RecordUsecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.Logger()
	v := validator.NewValidator()
	clock := func() time.Time { return now }

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	deptRepo := repository.NewDepartmentRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	lock := service.NewSchedulingLockService(nil, log, time.Second, time.Second)
	t.Cleanup(lock.Stop)
	audit := service.NewAuditService(log)

	return &harness{
		db:           db,
		f:            testutil.NewFixtures(t, db),
		reports:      usecase.NewReportUsecase(db, log, v, clock, patientRepo, doctorRepo, deptRepo),
		scheduling:   usecase.NewSchedulingUsecase(db, log, v, clock, appointmentRepo, doctorRepo, lock, audit),
		users:        usecase.NewUserUsecase(db, log, v, userRepo, audit),
		patients:     usecase.NewPatientUsecase(db, log, v, userRepo, patientRepo, audit),
		doctors:      usecase.NewDoctorUsecase(db, log, v, userRepo, doctorRepo, deptRepo, audit),
		departments:  usecase.NewDepartmentUsecase(db, log, v, deptRepo, doctorRepo, audit),
		appointments: usecase.NewAppointmentUsecase(db, log, v, appointmentRepo, audit),
		records: usecase.NewRecordUsecase(db, log, v,
			repository.NewInsuranceRepository(),
			repository.NewPrescriptionRepository(),
			repository.NewSurgeryRepository(),
			repository.NewPatientDoctorRepository(),
			appointmentRepo,
			audit,
		),
	}
}

func days(n int) time.Time {
	return now.AddDate(0, 0, n)
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

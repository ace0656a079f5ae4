package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"
	"hospital-management/internal/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, domainRepo.ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, domainRepo.ErrConstraintViolation},
		{"foreign key", gorm.ErrForeignKeyViolated, domainRepo.ErrNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, domainRepo.ErrConstraintViolation},
		{"pg not null", &pgconn.PgError{Code: "23502"}, domainRepo.ErrConstraintViolation},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, domainRepo.ErrNotFound},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), domainRepo.ErrConstraintViolation},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), domainRepo.ErrNotFound},
		{"invalid enum", entity.ErrInvalidEnum, domainRepo.ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.in), tt.want)
		})
	}

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
	assert.NoError(t, translateError(nil))
}

func TestBaseRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository()
	ctx := context.Background()

	u := &entity.User{Email: "a@example.com", FirstName: "Ann"}
	require.NoError(t, repo.Create(ctx, db, u))
	require.NotZero(t, u.ID)
	assert.True(t, u.Active())

	found, err := repo.FindByID(ctx, db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.FirstName)

	found.LastName = "Lee"
	require.NoError(t, repo.Update(ctx, db, found))

	byEmail, err := repo.FindByEmail(ctx, db, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Lee", byEmail.LastName)

	require.NoError(t, repo.Delete(ctx, db, u.ID))
	_, err = repo.FindByID(ctx, db, u.ID)
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, db, u.ID), domainRepo.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, db, &entity.User{ID: 999, Email: "x@example.com"}), domainRepo.ErrNotFound)
}

func TestBaseRepository_UniqueEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, db, &entity.User{Email: "dup@example.com"}))
	err := repo.Create(ctx, db, &entity.User{Email: "dup@example.com"})
	assert.ErrorIs(t, err, domainRepo.ErrConstraintViolation)
}

func TestBaseRepository_FindAllAndFindByIDs(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	repo := NewPatientRepository()
	ctx := context.Background()

	p1 := f.Patient()
	p2 := f.Patient()
	p3 := f.Patient()

	page, total, err := repo.FindAll(ctx, db, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, p2.ID, page[0].ID)
	assert.Equal(t, p3.ID, page[1].ID)
	assert.NotEmpty(t, page[0].User.Email)

	found, err := repo.FindByIDs(ctx, db, []int64{p3.ID, 999, p1.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, p1.ID, found[0].ID)
	assert.Equal(t, p3.ID, found[1].ID)

	empty, err := repo.FindByIDs(ctx, db, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateBatch_AllOrNothing(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	repo := NewAppointmentRepository()
	ctx := context.Background()

	p := f.Patient()
	d := f.Doctor()
	at := time.Now().UTC()

	err := repo.CreateBatch(ctx, db, []entity.Appointment{
		{PatientID: p.ID, DoctorID: d.ID, AppointmentDate: at, Status: entity.AppointmentStatusScheduled},
		{PatientID: p.ID, DoctorID: d.ID + 100, AppointmentDate: at, Status: entity.AppointmentStatusScheduled},
	})
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&entity.Appointment{}).Count(&n).Error)
	assert.Zero(t, n)

	batch := []entity.Appointment{
		{PatientID: p.ID, DoctorID: d.ID, AppointmentDate: at, Status: entity.AppointmentStatusScheduled},
		{PatientID: p.ID, DoctorID: d.ID, AppointmentDate: at, Status: entity.AppointmentStatus("Missed")},
	}
	assert.ErrorIs(t, repo.CreateBatch(ctx, db, batch), domainRepo.ErrConstraintViolation)
	require.NoError(t, db.Model(&entity.Appointment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAppointmentRepository_UpdateStatusBefore(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	repo := NewAppointmentRepository()
	ctx := context.Background()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	p := f.Patient()
	d := f.Doctor()
	past := f.Appointment(p.ID, d.ID, now.Add(-time.Hour), entity.AppointmentStatusScheduled)
	f.Appointment(p.ID, d.ID, now.Add(-time.Hour), entity.AppointmentStatusCancelled)
	f.Appointment(p.ID, d.ID, now, entity.AppointmentStatusScheduled)

	n, err := repo.UpdateStatusBefore(ctx, db, now, entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.FindByID(ctx, db, past.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, got.Status)
}

func TestAppointmentRepository_UpdateStatusBeforeRejectsUnknownStatus(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	repo := NewAppointmentRepository()
	ctx := context.Background()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	appt := f.Appointment(f.Patient().ID, f.Doctor().ID, now.Add(-time.Hour), entity.AppointmentStatusScheduled)

	n, err := repo.UpdateStatusBefore(ctx, db, now, entity.AppointmentStatusScheduled, entity.AppointmentStatus("Missed"))
	assert.ErrorIs(t, err, domainRepo.ErrConstraintViolation)
	assert.Zero(t, n)

	got, err := repo.FindByID(ctx, db, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusScheduled, got.Status)
}

func TestDoctorRepository_DeleteReleasesHead(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	dept := f.Department("Cardiology")
	doc := f.Doctor(testutil.InDepartment(dept.ID))
	require.NoError(t, db.Model(dept).Update("head_doctor_id", doc.ID).Error)

	depts := NewDepartmentRepository()
	loaded, err := depts.FindByName(ctx, db, "Cardiology")
	require.NoError(t, err)
	require.NotNil(t, loaded.HeadDoctor)
	assert.Equal(t, doc.ID, loaded.HeadDoctor.ID)

	require.NoError(t, NewDoctorRepository().Delete(ctx, db, doc.ID))

	loaded, err = depts.FindByID(ctx, db, dept.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.HeadDoctorID)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	p := f.Patient()
	d := f.Doctor()
	appt := f.Appointment(p.ID, d.ID, time.Now().UTC(), entity.AppointmentStatusScheduled)
	f.Prescription(appt, "Painkiller")
	f.Insurance(p.ID, "XYZ Insurance")

	require.NoError(t, NewUserRepository().Delete(ctx, db, p.UserID))

	for _, model := range []any{&entity.Patient{}, &entity.Appointment{}, &entity.Prescription{}, &entity.Insurance{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}
}

func TestDoctorRepository_LockForUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()
	repo := NewDoctorRepository()

	d := f.Doctor()
	err := db.Transaction(func(tx *gorm.DB) error {
		got, err := repo.LockForUpdate(ctx, tx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)

		_, err = repo.LockForUpdate(ctx, tx, d.ID+1)
		assert.ErrorIs(t, err, domainRepo.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

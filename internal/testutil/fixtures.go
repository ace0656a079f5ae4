package testutil

import (
	"fmt"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fixtures inserts rows with plausible fake data. Each constructor accepts
// modifiers applied before the insert.
type Fixtures struct {
	t     testing.TB
	db    *gorm.DB
	faker *gofakeit.Faker
	seq   int
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db, faker: gofakeit.New(42)}
}

func (f *Fixtures) create(value any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(value).Error)
}

func (f *Fixtures) newUser() entity.User {
	f.seq++
	phone := f.faker.Numerify("0##########")
	return entity.User{
		Email:       fmt.Sprintf("%d.%s", f.seq, f.faker.Email()),
		FirstName:   f.faker.FirstName(),
		LastName:    f.faker.LastName(),
		PhoneNumber: &phone,
	}
}

func (f *Fixtures) User(mods ...func(*entity.User)) *entity.User {
	f.t.Helper()
	u := f.newUser()
	for _, m := range mods {
		m(&u)
	}
	f.create(&u)
	return &u
}

// Patient creates a patient and its user.
func (f *Fixtures) Patient(mods ...func(*entity.Patient)) *entity.Patient {
	f.t.Helper()
	dob := f.faker.DateRange(
		time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	).UTC().Truncate(24 * time.Hour)
	gender := []entity.Gender{entity.GenderMale, entity.GenderFemale, entity.GenderOther}[f.faker.Number(0, 2)]
	p := entity.Patient{
		User:        f.newUser(),
		DateOfBirth: &dob,
		Gender:      &gender,
		Address:     f.faker.Street(),
	}
	for _, m := range mods {
		m(&p)
	}
	f.create(&p)
	return &p
}

// Doctor creates a doctor and its user.
func (f *Fixtures) Doctor(mods ...func(*entity.Doctor)) *entity.Doctor {
	f.t.Helper()
	d := entity.Doctor{
		User:           f.newUser(),
		Specialization: f.faker.RandomString([]string{"Cardiology", "Neurology", "Pediatrics", "Oncology"}),
	}
	for _, m := range mods {
		m(&d)
	}
	f.create(&d)
	return &d
}

func (f *Fixtures) Department(name string, mods ...func(*entity.Department)) *entity.Department {
	f.t.Helper()
	d := entity.Department{Name: name}
	for _, m := range mods {
		m(&d)
	}
	f.create(&d)
	return &d
}

func (f *Fixtures) Insurance(patientID int64, provider string) *entity.Insurance {
	f.t.Helper()
	i := entity.Insurance{
		PatientID:       patientID,
		Provider:        provider,
		PolicyNumber:    f.faker.Numerify("POL-########"),
		CoverageDetails: f.faker.Sentence(6),
	}
	f.create(&i)
	return &i
}

func (f *Fixtures) Appointment(patientID, doctorID int64, at time.Time, status entity.AppointmentStatus) *entity.Appointment {
	f.t.Helper()
	a := entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: at,
		Status:          status,
		Notes:           f.faker.Sentence(4),
	}
	f.create(&a)
	return &a
}

// Prescription copies the patient and doctor from the appointment.
func (f *Fixtures) Prescription(appt *entity.Appointment, medicine string) *entity.Prescription {
	f.t.Helper()
	p := entity.Prescription{
		AppointmentID:  appt.ID,
		PatientID:      appt.PatientID,
		DoctorID:       appt.DoctorID,
		MedicineDetail: medicine,
		Instructions:   f.faker.Sentence(5),
	}
	f.create(&p)
	return &p
}

func (f *Fixtures) Surgery(patientID, doctorID int64, at time.Time) *entity.Surgery {
	f.t.Helper()
	s := entity.Surgery{
		PatientID:   patientID,
		DoctorID:    doctorID,
		SurgeryDate: at,
		SurgeryType: f.faker.RandomString([]string{"Appendectomy", "Bypass", "Arthroscopy"}),
		Notes:       f.faker.Sentence(4),
	}
	f.create(&s)
	return &s
}

func (f *Fixtures) Relationship(patientID, doctorID int64, kind entity.RelationshipType) *entity.PatientDoctor {
	f.t.Helper()
	r := entity.PatientDoctor{PatientID: patientID, DoctorID: doctorID, RelationshipType: kind}
	f.create(&r)
	return &r
}

// InDepartment assigns a doctor to a department.
func InDepartment(id int64) func(*entity.Doctor) {
	return func(d *entity.Doctor) { d.DepartmentID = &id }
}

// Specialization overrides a doctor's specialization.
func Specialization(s string) func(*entity.Doctor) {
	return func(d *entity.Doctor) { d.Specialization = s }
}

// BornOn overrides a patient's date of birth; nil leaves it unknown.
func BornOn(dob *time.Time) func(*entity.Patient) {
	return func(p *entity.Patient) { p.DateOfBirth = dob }
}

// WithGender overrides a patient's gender; nil leaves it unspecified.
func WithGender(g *entity.Gender) func(*entity.Patient) {
	return func(p *entity.Patient) { p.Gender = g }
}

// LastName overrides the user last name of a patient.
func LastName(name string) func(*entity.Patient) {
	return func(p *entity.Patient) { p.User.LastName = name }
}

// Phone overrides the user phone number of a patient; nil clears it.
func Phone(phone *string) func(*entity.Patient) {
	return func(p *entity.Patient) { p.User.PhoneNumber = phone }
}

// Date builds a UTC date at midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

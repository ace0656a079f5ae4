package usecase_test

import (
	"context"
	"errors"
	"testing"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/testutil"
	"hospital-management/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientIDs(ps []dto.PatientResponse) []int64 {
	return ids(ps, func(p dto.PatientResponse) int64 { return p.ID })
}

func appointmentIDs(as []dto.AppointmentResponse) []int64 {
	return ids(as, func(a dto.AppointmentResponse) int64 { return a.ID })
}

func doctorCountIDs(cs []dto.DoctorCountResponse) []int64 {
	return ids(cs, func(c dto.DoctorCountResponse) int64 { return c.Doctor.ID })
}

func departmentNames(cs []dto.DepartmentCountResponse) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Department.Name
	}
	return out
}

func TestUpcomingAppointments_InclusiveWindowWithParties(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := h.f.Patient()
	d := h.f.Doctor()
	later := h.f.Appointment(p.ID, d.ID, days(7), entity.AppointmentStatusScheduled)
	soon := h.f.Appointment(p.ID, d.ID, days(1), entity.AppointmentStatusScheduled)
	h.f.Appointment(p.ID, d.ID, days(8), entity.AppointmentStatusScheduled)
	h.f.Appointment(p.ID, d.ID, days(-1), entity.AppointmentStatusCompleted)

	got, err := h.reports.UpcomingAppointments(ctx, dto.WindowParams{Days: 7})
	require.NoError(t, err)
	assert.Equal(t, []int64{soon.ID, later.ID}, appointmentIDs(got))
	for _, a := range got {
		require.NotNil(t, a.Patient)
		require.NotNil(t, a.Doctor)
		assert.Equal(t, p.ID, a.Patient.ID)
		assert.NotNil(t, a.Patient.User)
		assert.Equal(t, d.ID, a.Doctor.ID)
		assert.NotNil(t, a.Doctor.User)
	}
}

func TestUninsuredRecentPatients_Deduplicated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d := h.f.Doctor()
	twice := h.f.Patient()
	h.f.Appointment(twice.ID, d.ID, days(-2), entity.AppointmentStatusCompleted)
	h.f.Appointment(twice.ID, d.ID, days(-10), entity.AppointmentStatusCompleted)

	insured := h.f.Patient()
	h.f.Insurance(insured.ID, "Acme")
	h.f.Appointment(insured.ID, d.ID, days(-2), entity.AppointmentStatusCompleted)

	stale := h.f.Patient()
	h.f.Appointment(stale.ID, d.ID, days(-40), entity.AppointmentStatusCompleted)

	got, err := h.reports.UninsuredRecentPatients(ctx, dto.WindowParams{Days: 30})
	require.NoError(t, err)
	assert.Equal(t, []int64{twice.ID}, patientIDs(got))
}

func TestBusyDoctors_ThresholdIsMonotonic(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := h.f.Patient()
	for n := 1; n <= 4; n++ {
		d := h.f.Doctor()
		for i := 0; i < n; i++ {
			h.f.Appointment(p.ID, d.ID, days(-i-1), entity.AppointmentStatusCompleted)
		}
	}

	prev := -1
	for min := int64(1); min <= 5; min++ {
		got, err := h.reports.BusyDoctors(ctx, dto.BusyDoctorsParams{Min: min, Months: 6})
		require.NoError(t, err)
		for _, c := range got {
			assert.Greater(t, c.Count, min)
		}
		if prev >= 0 {
			assert.LessOrEqual(t, len(got), prev)
		}
		prev = len(got)
	}
	assert.Zero(t, prev)
}

func TestSetReports_Laws(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d := h.f.Doctor()
	apptOnly := h.f.Patient()
	h.f.Appointment(apptOnly.ID, d.ID, days(-3), entity.AppointmentStatusCompleted)

	surgeryOnly := h.f.Patient()
	h.f.Surgery(surgeryOnly.ID, d.ID, days(-3))

	both := h.f.Patient()
	a := h.f.Appointment(both.ID, d.ID, days(-5), entity.AppointmentStatusCompleted)
	h.f.Surgery(both.ID, d.ID, days(-4))
	h.f.Prescription(a, "Painkiller")

	h.f.Patient()

	union, err := h.reports.PatientsWithAppointmentOrSurgery(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{apptOnly.ID, surgeryOnly.ID, both.ID}, patientIDs(union))

	withoutSurgery, err := h.reports.PatientsWithAppointmentWithoutSurgery(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{apptOnly.ID}, patientIDs(withoutSurgery))

	intersection, err := h.reports.PatientsWithAppointmentAndPrescription(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{both.ID}, patientIDs(intersection))

	withoutPrescription, err := h.reports.PatientsWithAppointmentWithoutPrescription(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{apptOnly.ID}, patientIDs(withoutPrescription))

	all, err := h.reports.PatientsWithAppointmentPrescriptionAndSurgery(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{both.ID}, patientIDs(all))

	surgeryNoRx, err := h.reports.PatientsWithSurgeryWithoutPrescription(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{surgeryOnly.ID}, patientIDs(surgeryNoRx))

	assert.GreaterOrEqual(t, len(union), len(withoutSurgery))
	assert.Subset(t, patientIDs(union), patientIDs(intersection))
	assert.NotContains(t, patientIDs(withoutPrescription), both.ID)
}

func TestSurgicalOnlyAverageAge_ExcludesUnknownBirthDates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d := h.f.Doctor()
	forty := h.f.Patient(testutil.BornOn(testutil.Ptr(testutil.Date(1984, 6, 15))))
	// birthday is tomorrow, so still 29
	twentyNine := h.f.Patient(testutil.BornOn(testutil.Ptr(testutil.Date(1994, 6, 16))))
	unknown := h.f.Patient(testutil.BornOn(nil))
	visited := h.f.Patient(testutil.BornOn(testutil.Ptr(testutil.Date(2000, 1, 1))))

	for _, p := range []*entity.Patient{forty, twentyNine, unknown, visited} {
		h.f.Surgery(p.ID, d.ID, days(-20))
	}
	h.f.Appointment(visited.ID, d.ID, days(-1), entity.AppointmentStatusCompleted)

	got, err := h.reports.SurgicalOnlyAverageAge(ctx)
	require.NoError(t, err)
	require.True(t, got.AverageAge.Valid)
	assert.True(t, got.AverageAge.Decimal.Equal(decimal.RequireFromString("34.5")), got.AverageAge.Decimal.String())
	assert.EqualValues(t, 2, got.PatientCount)
}

func TestSurgicalOnlyAverageAge_NullWhenEmpty(t *testing.T) {
	h := newHarness(t)

	got, err := h.reports.SurgicalOnlyAverageAge(context.Background())
	require.NoError(t, err)
	assert.False(t, got.AverageAge.Valid)
	assert.Zero(t, got.PatientCount)
}

func TestPatientAgeStatsAndExtremes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	old := h.f.Patient(testutil.BornOn(testutil.Ptr(testutil.Date(1950, 1, 1))))
	young := h.f.Patient(testutil.BornOn(testutil.Ptr(testutil.Date(2010, 12, 31))))
	h.f.Patient(testutil.BornOn(nil))

	stats, err := h.reports.PatientAgeStats(ctx)
	require.NoError(t, err)
	require.NotNil(t, stats.MinAge)
	require.NotNil(t, stats.MaxAge)
	assert.Equal(t, 13, *stats.MinAge)
	assert.Equal(t, 74, *stats.MaxAge)
	assert.True(t, stats.AverageAge.Decimal.Equal(decimal.RequireFromString("43.5")))
	assert.EqualValues(t, 2, stats.PatientCount)

	extremes, err := h.reports.PatientAgeExtremes(ctx)
	require.NoError(t, err)
	require.NotNil(t, extremes.Oldest)
	require.NotNil(t, extremes.Youngest)
	assert.Equal(t, old.ID, extremes.Oldest.ID)
	assert.Equal(t, young.ID, extremes.Youngest.ID)
}

func TestLeaderlessDepartments_Scenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cardiology := h.f.Department("Cardiology")
	staff := make([]*entity.Doctor, 3)
	for i := range staff {
		staff[i] = h.f.Doctor(testutil.InDepartment(cardiology.ID))
	}
	small := h.f.Department("Dermatology")
	h.f.Doctor(testutil.InDepartment(small.ID))

	params := dto.MinCountParams{Min: 3}
	got, err := h.reports.LeaderlessDepartments(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology"}, departmentNames(got))
	assert.EqualValues(t, 3, got[0].Count)

	h.f.Doctor(testutil.InDepartment(cardiology.ID))
	got, err = h.reports.LeaderlessDepartments(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology"}, departmentNames(got))
	assert.EqualValues(t, 4, got[0].Count)

	_, err = h.departments.Update(ctx, cardiology.ID, &dto.UpdateDepartmentRequest{HeadDoctorID: &staff[0].ID})
	require.NoError(t, err)
	got, err = h.reports.LeaderlessDepartments(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMostPrescribedMedicine_TieGoesToFirstSeen(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	none, err := h.reports.MostPrescribedMedicine(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	p := h.f.Patient()
	d := h.f.Doctor()
	for i, medicine := range []string{"Aspirin", "Ibuprofen", "Aspirin", "Ibuprofen", "Zinc", ""} {
		a := h.f.Appointment(p.ID, d.ID, days(-i-1), entity.AppointmentStatusCompleted)
		h.f.Prescription(a, medicine)
	}

	got, err := h.reports.MostPrescribedMedicine(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aspirin", got.Medicine)
	assert.EqualValues(t, 2, got.Count)
}

func TestAppointmentsByInsurer_SkipsSundays(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d := h.f.Doctor()
	insured := h.f.Patient()
	h.f.Insurance(insured.ID, "XYZ Insurance")
	saturday := h.f.Appointment(insured.ID, d.ID, now, entity.AppointmentStatusScheduled)
	h.f.Appointment(insured.ID, d.ID, days(1), entity.AppointmentStatusScheduled)

	other := h.f.Patient()
	h.f.Insurance(other.ID, "Other Co")
	h.f.Appointment(other.ID, d.ID, now, entity.AppointmentStatusScheduled)

	got, err := h.reports.AppointmentsByInsurer(ctx, dto.ProviderParams{Provider: "XYZ Insurance"})
	require.NoError(t, err)
	assert.Equal(t, []int64{saturday.ID}, appointmentIDs(got))
}

func TestDoctorReports(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	idle := h.f.Doctor(testutil.Specialization("Neurology"))
	busy := h.f.Doctor(testutil.Specialization("Cardiology"))
	surgeon := h.f.Doctor(testutil.Specialization("Cardiology"))
	p1 := h.f.Patient()
	p2 := h.f.Patient()

	h.f.Appointment(p1.ID, busy.ID, days(-1), entity.AppointmentStatusCompleted)
	h.f.Appointment(p1.ID, busy.ID, days(-2), entity.AppointmentStatusCompleted)
	h.f.Appointment(p2.ID, busy.ID, days(-3), entity.AppointmentStatusCompleted)
	h.f.Surgery(p1.ID, surgeon.ID, days(-10))
	h.f.Surgery(p2.ID, surgeon.ID, days(-400))

	counts, err := h.reports.DoctorAppointmentCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{idle.ID, busy.ID, surgeon.ID}, doctorCountIDs(counts))
	assert.EqualValues(t, []int64{0, 3, 0}, ids(counts, func(c dto.DoctorCountResponse) int64 { return c.Count }))

	top, err := h.reports.TopSurgeon(ctx)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, surgeon.ID, top.Doctor.ID)
	assert.EqualValues(t, 2, top.Count)

	active, err := h.reports.ActiveSurgeonIDs(ctx, dto.ActiveSurgeonsParams{Min: 1, Days: 365})
	require.NoError(t, err)
	assert.Equal(t, []int64{surgeon.ID}, active)
	active, err = h.reports.ActiveSurgeonIDs(ctx, dto.ActiveSurgeonsParams{Min: 2, Days: 365})
	require.NoError(t, err)
	assert.Empty(t, active)

	repeats, err := h.reports.RepeatVisits(ctx, dto.MinCountParams{Min: 1})
	require.NoError(t, err)
	require.Len(t, repeats, 1)
	assert.Equal(t, p1.ID, repeats[0].Patient.ID)
	assert.Equal(t, busy.ID, repeats[0].Doctor.ID)
	assert.EqualValues(t, 2, repeats[0].AppointmentCount)

	ranged, err := h.reports.DoctorsByPatientRange(ctx, dto.PatientRangeParams{Min: 1, Max: 3, Days: 365})
	require.NoError(t, err)
	assert.Equal(t, []int64{busy.ID}, doctorCountIDs(ranged))

	specs, err := h.reports.SpecializationsByDoctorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.SpecializationCountResponse{
		{Specialization: "Cardiology", DoctorCount: 2},
		{Specialization: "Neurology", DoctorCount: 1},
	}, specs)
}

func TestTopSurgeon_NilWithoutDoctors(t *testing.T) {
	h := newHarness(t)

	top, err := h.reports.TopSurgeon(context.Background())
	require.NoError(t, err)
	assert.Nil(t, top)
}

func TestDepartmentReports(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	empty := h.f.Department("Archive")
	surgery := h.f.Department("Surgery")
	d1 := h.f.Doctor(testutil.InDepartment(surgery.ID))
	d2 := h.f.Doctor(testutil.InDepartment(surgery.ID))
	p := h.f.Patient()
	h.f.Surgery(p.ID, d1.ID, days(-1))
	h.f.Surgery(p.ID, d2.ID, days(-2))
	h.f.Surgery(p.ID, d2.ID, days(-3))

	byCount, err := h.reports.DepartmentsByDoctorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Surgery", "Archive"}, departmentNames(byCount))

	surgeries, err := h.reports.DepartmentSurgeryCounts(ctx)
	require.NoError(t, err)
	require.Len(t, surgeries, 2)
	assert.Equal(t, empty.ID, surgeries[0].Department.ID)
	assert.EqualValues(t, 0, surgeries[0].Count)
	assert.EqualValues(t, 3, surgeries[1].Count)

	staffed, err := h.reports.StaffedDepartments(ctx, dto.MinCountParams{Min: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Surgery"}, departmentNames(staffed))

	_, err = h.departments.Update(ctx, surgery.ID, &dto.UpdateDepartmentRequest{HeadDoctorID: &d2.ID})
	require.NoError(t, err)
	heads, err := h.reports.DepartmentHeads(ctx)
	require.NoError(t, err)
	require.Len(t, heads, 2)
	assert.Nil(t, heads[0].HeadDoctor)
	require.NotNil(t, heads[1].HeadDoctor)
	assert.Equal(t, d2.ID, heads[1].HeadDoctor.ID)
	assert.NotNil(t, heads[1].HeadDoctor.User)
}

func TestAggregateReports(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	male := entity.GenderMale
	p1 := h.f.Patient(testutil.WithGender(&male))
	p2 := h.f.Patient(testutil.WithGender(&male))
	p3 := h.f.Patient(testutil.WithGender(nil))
	h.f.Insurance(p1.ID, "Zeta")
	h.f.Insurance(p2.ID, "Alpha")
	h.f.Insurance(p3.ID, "")

	genders, err := h.reports.GenderCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.GenderCountResponse{Male: 2, Unspecified: 1}, genders)

	providers, err := h.reports.ActiveInsuranceProviders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, providers)

	popular, err := h.reports.PopularInsuranceProviders(ctx, dto.MinCountParams{Min: 1})
	require.NoError(t, err)
	assert.Empty(t, popular)
}

func TestPatientTextReports(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d := h.f.Doctor(testutil.Specialization("Pediatric Dermatology"))
	smith := h.f.Patient(testutil.LastName("Smith"))
	lower := h.f.Patient(testutil.LastName("smith"), testutil.Phone(nil))
	h.f.Patient(testutil.LastName("Jones"), testutil.Phone(testutil.Ptr("")))

	a := h.f.Appointment(smith.ID, d.ID, days(-1), entity.AppointmentStatusCompleted)
	h.f.Prescription(a, "Strong PAINKILLER 50mg")

	byPrefix, err := h.reports.PatientsByLastName(ctx, dto.PrefixParams{Prefix: "S"})
	require.NoError(t, err)
	assert.Equal(t, []int64{smith.ID}, patientIDs(byPrefix))

	noPhone, err := h.reports.PatientsWithoutPhone(ctx)
	require.NoError(t, err)
	assert.Len(t, noPhone, 2)
	assert.Contains(t, patientIDs(noPhone), lower.ID)

	byMedicine, err := h.reports.PatientsByMedicine(ctx, dto.SearchParams{Term: "painkiller"})
	require.NoError(t, err)
	assert.Equal(t, []int64{smith.ID}, patientIDs(byMedicine))

	bySpecialization, err := h.reports.AppointmentsBySpecialization(ctx, dto.SearchParams{Term: "dermatology"})
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, appointmentIDs(bySpecialization))

	recent, err := h.reports.RecentPatientsWithPrescriptions(ctx, dto.WindowParams{Days: 30})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Len(t, recent[0].Prescriptions, 1)
}

func TestReports_RejectInvalidParameters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.reports.BusyDoctors(ctx, dto.BusyDoctorsParams{Min: 0, Months: 6})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = h.reports.DoctorsByPatientRange(ctx, dto.PatientRangeParams{Min: 10, Max: 5, Days: 30})
	var verr *usecase.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "max")

	_, err = h.reports.PatientsByMedicine(ctx, dto.SearchParams{Term: "   "})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = h.reports.UpcomingAppointments(ctx, dto.WindowParams{Days: -1})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

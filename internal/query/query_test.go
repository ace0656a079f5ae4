package query_test

import (
	"context"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/query"
	"hospital-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientIDs(ps []entity.Patient) []int64 {
	ids := make([]int64, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestQuery_ImmutableAndRestartable(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	p1 := f.Patient(testutil.LastName("Smith"))
	p2 := f.Patient(testutil.LastName("Jones"))
	p3 := f.Patient(testutil.LastName("Stone"))

	base := query.New[entity.Patient]().Joins("JOIN users ON users.id = patients.user_id")
	narrowed := base.Scope(query.Where(query.HasPrefix("users.last_name", "S")))

	all, err := base.Execute(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID, p2.ID, p3.ID}, patientIDs(all))

	first, err := narrowed.Execute(ctx, db)
	require.NoError(t, err)
	second, err := narrowed.Execute(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID, p3.ID}, patientIDs(first))
	assert.Equal(t, patientIDs(first), patientIDs(second))

	n, err := narrowed.Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestQuery_OrderingTieBreaksOnID(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	dob := testutil.Date(1990, time.May, 1)
	a := f.Patient(testutil.BornOn(&dob))
	b := f.Patient(testutil.BornOn(&dob))
	older := testutil.Date(1950, time.January, 1)
	c := f.Patient(testutil.BornOn(&older))

	rows, err := query.New[entity.Patient]().OrderBy("date_of_birth DESC").Execute(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID, c.ID}, patientIDs(rows))

	top, err := query.New[entity.Patient]().OrderBy("date_of_birth ASC").First(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, c.ID, top.ID)
}

func TestQuery_FirstEmpty(t *testing.T) {
	db := testutil.NewDB(t)

	row, err := query.New[entity.Doctor]().First(context.Background(), db)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRelation_ExistsAbsentKeys(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	doc := f.Doctor()
	insured := f.Patient()
	uninsured := f.Patient()
	f.Insurance(insured.ID, "XYZ Insurance")
	f.Appointment(uninsured.ID, doc.ID, time.Now().UTC(), entity.AppointmentStatusScheduled)

	withIns, err := query.New[entity.Patient]().Scope(query.InsurancePatient.Exists()).IDs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{insured.ID}, withIns.Slice())

	without, err := query.New[entity.Patient]().Scope(query.InsurancePatient.Absent()).IDs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{uninsured.ID}, without.Slice())

	keys, err := query.AppointmentPatient.Keys(ctx, db, query.C("appointments.doctor_id = ?", doc.ID))
	require.NoError(t, err)
	assert.Equal(t, []int64{uninsured.ID}, keys.Slice())

	none, err := query.AppointmentPatient.Keys(ctx, db, query.C("appointments.doctor_id = ?", doc.ID+100))
	require.NoError(t, err)
	assert.Zero(t, none.Len())
}

func TestRelation_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()
	now := time.Now().UTC()

	d1 := f.Doctor()
	d2 := f.Doctor()
	d3 := f.Doctor()
	p1 := f.Patient()
	p2 := f.Patient()

	f.Appointment(p1.ID, d2.ID, now, entity.AppointmentStatusScheduled)
	f.Appointment(p1.ID, d2.ID, now, entity.AppointmentStatusCompleted)
	f.Appointment(p2.ID, d2.ID, now.AddDate(-2, 0, 0), entity.AppointmentStatusCompleted)
	f.Appointment(p1.ID, d1.ID, now, entity.AppointmentStatusScheduled)

	all, err := query.AppointmentDoctor.Counts(ctx, db, query.CountOptions{})
	require.NoError(t, err)
	assert.Equal(t, []query.Count{{ID: d1.ID, Count: 1}, {ID: d2.ID, Count: 3}, {ID: d3.ID, Count: 0}}, all)

	desc, err := query.AppointmentDoctor.Counts(ctx, db, query.CountOptions{Descending: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []query.Count{{ID: d2.ID, Count: 3}, {ID: d1.ID, Count: 1}}, desc)

	above := query.Above(1)
	recentDistinct, err := query.AppointmentDoctor.Counts(ctx, db, query.CountOptions{
		Distinct: "patient_id",
		Conds:    []query.Cond{query.C("appointments.appointment_date >= ?", now.AddDate(-1, 0, 0))},
		Having:   &above,
	})
	require.NoError(t, err)
	assert.Empty(t, recentDistinct)

	atLeast := query.AtLeast(2)
	distinct, err := query.AppointmentDoctor.Counts(ctx, db, query.CountOptions{Distinct: "patient_id", Having: &atLeast})
	require.NoError(t, err)
	assert.Equal(t, []query.Count{{ID: d2.ID, Count: 2}}, distinct)
}

func TestCountRows_Pairs(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()
	now := time.Now().UTC()

	d := f.Doctor()
	p1 := f.Patient()
	p2 := f.Patient()
	f.Appointment(p1.ID, d.ID, now, entity.AppointmentStatusScheduled)
	f.Appointment(p1.ID, d.ID, now, entity.AppointmentStatusScheduled)
	f.Appointment(p2.ID, d.ID, now, entity.AppointmentStatusScheduled)

	above := query.Above(1)
	rows, err := query.CountRows(ctx, db, query.CountSpec{
		From:   "appointments",
		Keys:   []string{"appointments.patient_id", "appointments.doctor_id"},
		Count:  "appointments.id",
		Having: &above,
	})
	require.NoError(t, err)
	assert.Equal(t, []query.Row{{Keys: []int64{p1.ID, d.ID}, Count: 2}}, rows)
}

func TestTallyRows_TiesByFirstOccurrence(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	f.Doctor(testutil.Specialization("Neurology"))
	f.Doctor(testutil.Specialization("Cardiology"))
	f.Doctor(testutil.Specialization("Cardiology"))
	f.Doctor(testutil.Specialization("Neurology"))
	f.Doctor(testutil.Specialization("Oncology"))

	rows, err := query.TallyRows(ctx, db, query.TallySpec{Table: "doctors", Column: "specialization"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Neurology", rows[0].Value)
	assert.EqualValues(t, 2, rows[0].Count)
	assert.Equal(t, "Cardiology", rows[1].Value)
	assert.Equal(t, "Oncology", rows[2].Value)
}

func TestContainsFold_MatchesCaseInsensitively(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := context.Background()

	derm := f.Doctor(testutil.Specialization("Pediatric DERMATOLOGY"))
	f.Doctor(testutil.Specialization("Cardiology"))
	pct := f.Doctor(testutil.Specialization("100% Derm"))

	rows, err := query.New[entity.Doctor]().Scope(query.Where(query.ContainsFold("specialization", "dermatology"))).IDs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{derm.ID}, rows.Slice())

	rows, err = query.New[entity.Doctor]().Scope(query.Where(query.ContainsFold("specialization", "0% d"))).IDs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{pct.ID}, rows.Slice())
}

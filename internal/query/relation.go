package query

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Relation is a foreign key from a child table to its owner's id.
type Relation struct {
	Name   string
	Table  string
	Column string
	Owner  string
}

var (
	PatientUser         = Relation{Name: "patient.user", Table: "patients", Column: "user_id", Owner: "users"}
	DoctorUser          = Relation{Name: "doctor.user", Table: "doctors", Column: "user_id", Owner: "users"}
	DoctorDepartment    = Relation{Name: "doctor.department", Table: "doctors", Column: "department_id", Owner: "departments"}
	InsurancePatient    = Relation{Name: "insurance.patient", Table: "insurances", Column: "patient_id", Owner: "patients"}
	AppointmentPatient  = Relation{Name: "appointment.patient", Table: "appointments", Column: "patient_id", Owner: "patients"}
	AppointmentDoctor   = Relation{Name: "appointment.doctor", Table: "appointments", Column: "doctor_id", Owner: "doctors"}
	PrescriptionPatient = Relation{Name: "prescription.patient", Table: "prescriptions", Column: "patient_id", Owner: "patients"}
	PrescriptionDoctor  = Relation{Name: "prescription.doctor", Table: "prescriptions", Column: "doctor_id", Owner: "doctors"}
	PrescriptionAppt    = Relation{Name: "prescription.appointment", Table: "prescriptions", Column: "appointment_id", Owner: "appointments"}
	SurgeryPatient      = Relation{Name: "surgery.patient", Table: "surgeries", Column: "patient_id", Owner: "patients"}
	SurgeryDoctor       = Relation{Name: "surgery.doctor", Table: "surgeries", Column: "doctor_id", Owner: "doctors"}
	PatientDoctorDoctor = Relation{Name: "patient_doctor.doctor", Table: "patient_doctors", Column: "doctor_id", Owner: "doctors"}
)

func (r Relation) column() string {
	return r.Table + "." + r.Column
}

func (r Relation) subquery(db *gorm.DB, conds []Cond) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table(r.Table).
		Select(r.column()).
		Where(r.column() + " IS NOT NULL")
	return Where(conds...)(sub)
}

// Exists keeps owners referenced by at least one child row matching conds.
func (r Relation) Exists(conds ...Cond) Scope {
	return r.Via(r.Owner+".id", conds...)
}

// Via keeps rows whose column holds an owner id referenced by a child row
// matching conds, e.g. appointments whose patient holds a given insurance.
func (r Relation) Via(column string, conds ...Cond) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN (?)", r.subquery(db, conds))
	}
}

// Absent keeps owners referenced by no child row matching conds.
func (r Relation) Absent(conds ...Cond) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(r.Owner+".id NOT IN (?)", r.subquery(db, conds))
	}
}

// Keys returns the owner ids referenced by child rows matching conds,
// ascending.
func (r Relation) Keys(ctx context.Context, db *gorm.DB, conds ...Cond) (IDSet, error) {
	var ids []int64
	err := r.subquery(db.WithContext(ctx), conds).
		Distinct(r.column()).
		Order(r.column()+" ASC").
		Pluck(r.column(), &ids).Error
	if err != nil {
		return IDSet{}, err
	}
	return NewIDSet(ids...), nil
}

// CountOptions tunes Relation.Counts.
type CountOptions struct {
	// Distinct counts distinct values of this child column instead of rows.
	Distinct string
	// Conds restrict which child rows are counted; owners without any still
	// appear with zero.
	Conds []Cond
	// Filter restricts the owner rows.
	Filter     []Scope
	Having     *Threshold
	Descending bool
	Limit      int
}

// Count is a per-owner child count.
type Count struct {
	ID    int64
	Count int64
}

// Counts returns, for every owner, how many child rows reference it.
func (r Relation) Counts(ctx context.Context, db *gorm.DB, opts CountOptions) ([]Count, error) {
	on := []string{r.column() + " = " + r.Owner + ".id"}
	var args []any
	for _, c := range opts.Conds {
		on = append(on, "("+c.SQL+")")
		args = append(args, c.Args...)
	}

	counted := r.Table + ".id"
	if opts.Distinct != "" {
		counted = r.Table + "." + opts.Distinct
	}

	rows, err := CountRows(ctx, db, CountSpec{
		From:       r.Owner,
		Keys:       []string{r.Owner + ".id"},
		Joins:      []Cond{C("LEFT JOIN "+r.Table+" ON "+strings.Join(on, " AND "), args...)},
		Scopes:     opts.Filter,
		Count:      counted,
		Distinct:   opts.Distinct != "",
		Having:     opts.Having,
		Descending: opts.Descending,
		Limit:      opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]Count, len(rows))
	for i, row := range rows {
		out[i] = Count{ID: row.Keys[0], Count: row.Count}
	}
	return out, nil
}

// CountIDs lists the owner ids of counts in order.
func CountIDs(counts []Count) IDSet {
	s := NewIDSet()
	for _, c := range counts {
		s.Add(c.ID)
	}
	return s
}

package usecase

import (
	"context"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/query"
)

func (u *reportUsecase) BusyDoctors(ctx context.Context, params dto.BusyDoctorsParams) ([]dto.DoctorCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	counts, err := query.AppointmentDoctor.Counts(ctx, u.db, query.CountOptions{
		Conds:  []query.Cond{query.C("appointments.appointment_date >= ?", now.AddDate(0, -params.Months, 0))},
		Having: threshold(query.Above(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count appointments per doctor: %+v", err)
		return nil, err
	}
	return u.doctorCounts(ctx, counts)
}

func (u *reportUsecase) ProlificPrescribers(ctx context.Context, params dto.MinCountParams) ([]dto.DoctorCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	counts, err := query.PrescriptionDoctor.Counts(ctx, u.db, query.CountOptions{
		Having: threshold(query.AtLeast(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count prescriptions per doctor: %+v", err)
		return nil, err
	}
	return u.doctorCounts(ctx, counts)
}

func (u *reportUsecase) ActiveSurgeonIDs(ctx context.Context, params dto.ActiveSurgeonsParams) ([]int64, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	counts, err := query.SurgeryDoctor.Counts(ctx, u.db, query.CountOptions{
		Conds:  []query.Cond{query.C("surgeries.surgery_date >= ?", now.AddDate(0, 0, -params.Days))},
		Having: threshold(query.AtLeast(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count surgeries per doctor: %+v", err)
		return nil, err
	}
	return query.CountIDs(counts).Slice(), nil
}

// SpecializationsByDoctorCount breaks ties by the first doctor holding the
// specialization.
func (u *reportUsecase) SpecializationsByDoctorCount(ctx context.Context) ([]dto.SpecializationCountResponse, error) {
	tallies, err := query.TallyRows(ctx, u.db, query.TallySpec{
		Table:  "doctors",
		Column: "doctors.specialization",
		Where:  []query.Cond{query.C("doctors.specialization <> ''")},
	})
	if err != nil {
		u.log.Warnf("Failed to count doctors per specialization: %+v", err)
		return nil, err
	}

	out := make([]dto.SpecializationCountResponse, len(tallies))
	for i, t := range tallies {
		out[i] = dto.SpecializationCountResponse{Specialization: t.Value, DoctorCount: t.Count}
	}
	return out, nil
}

// DoctorsByPatientRange counts distinct patients per doctor over the window
// and keeps counts strictly between Min and Max.
func (u *reportUsecase) DoctorsByPatientRange(ctx context.Context, params dto.PatientRangeParams) ([]dto.DoctorCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	counts, err := query.AppointmentDoctor.Counts(ctx, u.db, query.CountOptions{
		Distinct: "patient_id",
		Conds:    []query.Cond{query.C("appointments.appointment_date >= ?", now.AddDate(0, 0, -params.Days))},
		Having:   threshold(query.Between(params.Min, params.Max)),
	})
	if err != nil {
		u.log.Warnf("Failed to count patients per doctor: %+v", err)
		return nil, err
	}
	return u.doctorCounts(ctx, counts)
}

// DoctorAppointmentCounts includes doctors without appointments.
func (u *reportUsecase) DoctorAppointmentCounts(ctx context.Context) ([]dto.DoctorCountResponse, error) {
	counts, err := query.AppointmentDoctor.Counts(ctx, u.db, query.CountOptions{})
	if err != nil {
		u.log.Warnf("Failed to count appointments per doctor: %+v", err)
		return nil, err
	}
	return u.doctorCounts(ctx, counts)
}

// TopSurgeon returns nil when there are no doctors.
func (u *reportUsecase) TopSurgeon(ctx context.Context) (*dto.DoctorCountResponse, error) {
	counts, err := query.SurgeryDoctor.Counts(ctx, u.db, query.CountOptions{Descending: true, Limit: 1})
	if err != nil {
		u.log.Warnf("Failed to count surgeries per doctor: %+v", err)
		return nil, err
	}

	rows, err := u.doctorCounts(ctx, counts)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (u *reportUsecase) RepeatVisits(ctx context.Context, params dto.MinCountParams) ([]dto.RepeatVisitResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	rows, err := query.CountRows(ctx, u.db, query.CountSpec{
		From:   "appointments",
		Keys:   []string{"appointments.patient_id", "appointments.doctor_id"},
		Count:  "appointments.id",
		Having: threshold(query.Above(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count visits per pair: %+v", err)
		return nil, err
	}
	if len(rows) == 0 {
		return []dto.RepeatVisitResponse{}, nil
	}

	var patientIDs, doctorIDs query.IDSet
	for _, r := range rows {
		patientIDs.Add(r.Keys[0])
		doctorIDs.Add(r.Keys[1])
	}
	patients, err := u.patientMap(ctx, patientIDs.Slice())
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, err
	}
	doctors, err := u.doctorMap(ctx, doctorIDs.Slice())
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, err
	}

	out := make([]dto.RepeatVisitResponse, 0, len(rows))
	for _, r := range rows {
		p, okP := patients[r.Keys[0]]
		d, okD := doctors[r.Keys[1]]
		if !okP || !okD {
			continue
		}
		out = append(out, dto.RepeatVisitResponse{
			Patient:          *converter.PatientToResponse(p),
			Doctor:           *converter.DoctorToResponse(d),
			AppointmentCount: r.Count,
		})
	}
	return out, nil
}

// TopDoctorsByPatients ranks doctors by distinct related patients.
func (u *reportUsecase) TopDoctorsByPatients(ctx context.Context, params dto.LimitParams) ([]dto.DoctorCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	counts, err := query.PatientDoctorDoctor.Counts(ctx, u.db, query.CountOptions{
		Distinct:   "patient_id",
		Descending: true,
		Limit:      params.Limit,
	})
	if err != nil {
		u.log.Warnf("Failed to count patients per doctor: %+v", err)
		return nil, err
	}
	return u.doctorCounts(ctx, counts)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/query"
)

func patientsWithUser() query.Query[entity.Patient] {
	return query.New[entity.Patient]().Preload("User")
}

func (u *reportUsecase) UninsuredRecentPatients(ctx context.Context, params dto.WindowParams) ([]dto.PatientResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	patients, err := patientsWithUser().
		Scope(
			query.InsurancePatient.Absent(),
			query.AppointmentPatient.Exists(query.C("appointments.appointment_date BETWEEN ? AND ?", now.AddDate(0, 0, -params.Days), now)),
		).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query uninsured recent patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

// RecentPatientsWithPrescriptions orders patients by their latest appointment
// inside the window, newest first.
func (u *reportUsecase) RecentPatientsWithPrescriptions(ctx context.Context, params dto.WindowParams) ([]dto.PatientPrescriptionsResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}
	now := u.now()

	appointments, err := query.New[entity.Appointment]().
		Where("appointments.appointment_date BETWEEN ? AND ?", now.AddDate(0, 0, -params.Days), now).
		OrderBy("appointments.appointment_date DESC").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query recent appointments: %+v", err)
		return nil, err
	}

	latest := make(map[int64]time.Time)
	var order query.IDSet
	for _, a := range appointments {
		if !order.Contains(a.PatientID) {
			latest[a.PatientID] = a.AppointmentDate
			order.Add(a.PatientID)
		}
	}
	if order.Len() == 0 {
		return []dto.PatientPrescriptionsResponse{}, nil
	}

	patients, err := u.patientMap(ctx, order.Slice())
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, err
	}

	prescriptions, err := query.New[entity.Prescription]().
		Where("prescriptions.patient_id IN ?", order.Slice()).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load prescriptions: %+v", err)
		return nil, err
	}
	byPatient := make(map[int64][]entity.Prescription)
	for _, p := range prescriptions {
		byPatient[p.PatientID] = append(byPatient[p.PatientID], p)
	}

	out := make([]dto.PatientPrescriptionsResponse, 0, order.Len())
	for _, id := range order.Slice() {
		p, ok := patients[id]
		if !ok {
			continue
		}
		out = append(out, dto.PatientPrescriptionsResponse{
			Patient:           *converter.PatientToResponse(p),
			LatestAppointment: latest[id].UTC(),
			Prescriptions:     converter.PrescriptionsToResponses(byPatient[id]),
		})
	}
	return out, nil
}

// patientSets evaluates the child relations a set report combines.
func (u *reportUsecase) patientSets(ctx context.Context, relations ...query.Relation) ([]query.IDSet, error) {
	sets := make([]query.IDSet, len(relations))
	for i, r := range relations {
		keys, err := r.Keys(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to collect %s keys: %+v", r.Name, err)
			return nil, err
		}
		sets[i] = keys
	}
	return sets, nil
}

func (u *reportUsecase) combinePatients(ctx context.Context, combine func(sets []query.IDSet) query.IDSet, relations ...query.Relation) ([]dto.PatientResponse, error) {
	sets, err := u.patientSets(ctx, relations...)
	if err != nil {
		return nil, err
	}
	return u.patientsByIDs(ctx, combine(sets))
}

func union(sets []query.IDSet) query.IDSet {
	out := query.NewIDSet()
	for _, s := range sets {
		out = out.Union(s)
	}
	return out
}

func intersect(sets []query.IDSet) query.IDSet {
	out := sets[0]
	for _, s := range sets[1:] {
		out = out.Intersect(s)
	}
	return out
}

func difference(sets []query.IDSet) query.IDSet {
	return sets[0].Difference(sets[1])
}

func (u *reportUsecase) PatientsWithAppointmentOrSurgery(ctx context.Context) ([]dto.PatientResponse, error) {
	return u.combinePatients(ctx, union, query.AppointmentPatient, query.SurgeryPatient)
}

func (u *reportUsecase) PatientsWithAppointmentAndPrescription(ctx context.Context) ([]dto.PatientResponse, error) {
	return u.combinePatients(ctx, intersect, query.AppointmentPatient, query.PrescriptionPatient)
}

func (u *reportUsecase) PatientsWithAppointmentWithoutPrescription(ctx context.Context) ([]dto.PatientResponse, error) {
	return u.combinePatients(ctx, difference, query.AppointmentPatient, query.PrescriptionPatient)
}

func (u *reportUsecase) PatientsWithAppointmentWithoutSurgery(ctx context.Context) ([]dto.PatientResponse, error) {
	return u.combinePatients(ctx, difference, query.AppointmentPatient, query.SurgeryPatient)
}

func (u *reportUsecase) PatientsWithAppointmentPrescriptionAndSurgery(ctx context.Context) ([]dto.PatientResponse, error) {
	return u.combinePatients(ctx, intersect, query.AppointmentPatient, query.PrescriptionPatient, query.SurgeryPatient)
}

func (u *reportUsecase) PatientsWithSurgeryWithoutPrescription(ctx context.Context) ([]dto.PatientResponse, error) {
	return u.combinePatients(ctx, difference, query.SurgeryPatient, query.PrescriptionPatient)
}

// UninsuredMultiDoctorPatients lists each patient's distinct doctors in the
// order they were first seen.
func (u *reportUsecase) UninsuredMultiDoctorPatients(ctx context.Context, params dto.MinCountParams) ([]dto.PatientDoctorsResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	counts, err := query.AppointmentPatient.Counts(ctx, u.db, query.CountOptions{
		Distinct: "doctor_id",
		Filter:   []query.Scope{query.InsurancePatient.Absent()},
		Having:   threshold(query.Above(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count doctors per patient: %+v", err)
		return nil, err
	}
	if len(counts) == 0 {
		return []dto.PatientDoctorsResponse{}, nil
	}
	patientIDs := query.CountIDs(counts)

	appointments, err := query.New[entity.Appointment]().
		Where("appointments.patient_id IN ?", patientIDs.Slice()).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, err
	}
	seen := make(map[int64]*query.IDSet)
	var doctorIDs query.IDSet
	for _, a := range appointments {
		if seen[a.PatientID] == nil {
			seen[a.PatientID] = &query.IDSet{}
		}
		seen[a.PatientID].Add(a.DoctorID)
		doctorIDs.Add(a.DoctorID)
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

	out := make([]dto.PatientDoctorsResponse, 0, len(counts))
	for _, c := range counts {
		p, ok := patients[c.ID]
		if !ok {
			continue
		}
		entry := dto.PatientDoctorsResponse{
			Patient:     *converter.PatientToResponse(p),
			DoctorCount: c.Count,
			Doctors:     []dto.DoctorResponse{},
		}
		var visited query.IDSet
		if s := seen[c.ID]; s != nil {
			visited = *s
		}
		for _, id := range visited.Slice() {
			if d, ok := doctors[id]; ok {
				entry.Doctors = append(entry.Doctors, *converter.DoctorToResponse(d))
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (u *reportUsecase) PatientsByMedicine(ctx context.Context, params dto.SearchParams) ([]dto.PatientResponse, error) {
	params.Term = strings.TrimSpace(params.Term)
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	patients, err := patientsWithUser().
		Scope(query.PrescriptionPatient.Exists(query.ContainsFold("prescriptions.medicine_detail", params.Term))).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query patients by medicine: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *reportUsecase) InsuredSurgicalPatients(ctx context.Context) ([]dto.InsuredSurgicalPatientResponse, error) {
	patients, err := patientsWithUser().
		Scope(query.InsurancePatient.Exists(), query.SurgeryPatient.Exists()).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query insured surgical patients: %+v", err)
		return nil, err
	}
	if len(patients) == 0 {
		return []dto.InsuredSurgicalPatientResponse{}, nil
	}

	ids := make([]int64, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
	}

	insurances, err := query.New[entity.Insurance]().Where("insurances.patient_id IN ?", ids).Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load insurances: %+v", err)
		return nil, err
	}
	insuranceOf := make(map[int64]*entity.Insurance, len(insurances))
	for i := range insurances {
		insuranceOf[insurances[i].PatientID] = &insurances[i]
	}

	surgeries, err := query.New[entity.Surgery]().
		Where("surgeries.patient_id IN ?", ids).
		OrderBy("surgeries.surgery_date ASC").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load surgeries: %+v", err)
		return nil, err
	}
	surgeriesOf := make(map[int64][]entity.Surgery)
	for _, s := range surgeries {
		surgeriesOf[s.PatientID] = append(surgeriesOf[s.PatientID], s)
	}

	out := make([]dto.InsuredSurgicalPatientResponse, 0, len(patients))
	for i := range patients {
		p := &patients[i]
		out = append(out, dto.InsuredSurgicalPatientResponse{
			Patient:   *converter.PatientToResponse(p),
			Insurance: *converter.InsuranceToResponse(insuranceOf[p.ID]),
			Surgeries: converter.SurgeriesToResponses(surgeriesOf[p.ID]),
		})
	}
	return out, nil
}

func (u *reportUsecase) PatientsByLastName(ctx context.Context, params dto.PrefixParams) ([]dto.PatientResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	patients, err := patientsWithUser().
		Joins("JOIN users ON users.id = patients.user_id").
		Scope(query.Where(query.HasPrefix("users.last_name", params.Prefix))).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query patients by last name: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *reportUsecase) PatientsWithoutPhone(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := patientsWithUser().
		Joins("JOIN users ON users.id = patients.user_id").
		Where("users.phone_number IS NULL OR users.phone_number = ''").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query patients without phone: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

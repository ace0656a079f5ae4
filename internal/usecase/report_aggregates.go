package usecase

import (
	"context"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/query"

	"github.com/shopspring/decimal"
)

// ageSummary collects ages of patients with a known date of birth.
type ageSummary struct {
	count    int64
	sum      int64
	min, max int
}

func summarizeAges(patients []entity.Patient, at time.Time) ageSummary {
	var s ageSummary
	for i := range patients {
		age, ok := patients[i].AgeAt(at)
		if !ok {
			continue
		}
		if s.count == 0 || age < s.min {
			s.min = age
		}
		if s.count == 0 || age > s.max {
			s.max = age
		}
		s.count++
		s.sum += int64(age)
	}
	return s
}

// average is the arithmetic mean rounded to two places, null when empty.
func (s ageSummary) average() decimal.NullDecimal {
	if s.count == 0 {
		return decimal.NullDecimal{}
	}
	avg := decimal.NewFromInt(s.sum).Div(decimal.NewFromInt(s.count)).Round(2)
	return decimal.NewNullDecimal(avg)
}

// ActiveInsuranceProviders lists distinct non-empty providers covering at
// least one patient whose account is active, alphabetically.
func (u *reportUsecase) ActiveInsuranceProviders(ctx context.Context) ([]string, error) {
	providers := []string{}
	err := u.db.WithContext(ctx).
		Table("insurances").
		Joins("JOIN patients ON patients.id = insurances.patient_id").
		Joins("JOIN users ON users.id = patients.user_id").
		Where("users.is_active = ?", true).
		Where("insurances.provider <> ''").
		Distinct("insurances.provider").
		Order("insurances.provider ASC").
		Pluck("insurances.provider", &providers).Error
	if err != nil {
		u.log.Warnf("Failed to query insurance providers: %+v", err)
		return nil, err
	}
	return providers, nil
}

// SurgicalOnlyAverageAge averages patients who had surgery but never an
// appointment.
func (u *reportUsecase) SurgicalOnlyAverageAge(ctx context.Context) (*dto.AverageAgeResponse, error) {
	now := u.now()

	patients, err := query.New[entity.Patient]().
		Where("patients.date_of_birth IS NOT NULL").
		Scope(query.SurgeryPatient.Exists(), query.AppointmentPatient.Absent()).
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query surgical-only patients: %+v", err)
		return nil, err
	}

	s := summarizeAges(patients, now)
	return &dto.AverageAgeResponse{AverageAge: s.average(), PatientCount: s.count}, nil
}

// PatientAgeExtremes returns the oldest and youngest patients by date of
// birth; both are nil when no patient has one.
func (u *reportUsecase) PatientAgeExtremes(ctx context.Context) (*dto.AgeExtremesResponse, error) {
	base := patientsWithUser().Where("patients.date_of_birth IS NOT NULL")

	oldest, err := base.OrderBy("patients.date_of_birth ASC").First(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query oldest patient: %+v", err)
		return nil, err
	}
	youngest, err := base.OrderBy("patients.date_of_birth DESC").First(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query youngest patient: %+v", err)
		return nil, err
	}

	res := &dto.AgeExtremesResponse{}
	if oldest != nil {
		res.Oldest = converter.PatientToResponse(oldest)
	}
	if youngest != nil {
		res.Youngest = converter.PatientToResponse(youngest)
	}
	return res, nil
}

func (u *reportUsecase) PopularInsuranceProviders(ctx context.Context, params dto.MinCountParams) ([]dto.ProviderCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	tallies, err := query.TallyRows(ctx, u.db, query.TallySpec{
		Table:    "insurances",
		Column:   "insurances.provider",
		Distinct: "insurances.patient_id",
		Where:    []query.Cond{query.C("insurances.provider <> ''")},
		Having:   threshold(query.Above(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count patients per provider: %+v", err)
		return nil, err
	}

	out := make([]dto.ProviderCountResponse, len(tallies))
	for i, t := range tallies {
		out[i] = dto.ProviderCountResponse{Provider: t.Value, PatientCount: t.Count}
	}
	return out, nil
}

func (u *reportUsecase) GenderCounts(ctx context.Context) (*dto.GenderCountResponse, error) {
	tallies, err := query.TallyRows(ctx, u.db, query.TallySpec{
		Table:  "patients",
		Column: "patients.gender",
	})
	if err != nil {
		u.log.Warnf("Failed to count patients per gender: %+v", err)
		return nil, err
	}

	res := &dto.GenderCountResponse{}
	for _, t := range tallies {
		switch entity.Gender(t.Value) {
		case entity.GenderMale:
			res.Male += t.Count
		case entity.GenderFemale:
			res.Female += t.Count
		case entity.GenderOther:
			res.Other += t.Count
		default:
			res.Unspecified += t.Count
		}
	}
	return res, nil
}

// MostPrescribedMedicine returns nil when no prescription names a medicine.
func (u *reportUsecase) MostPrescribedMedicine(ctx context.Context) (*dto.MedicineCountResponse, error) {
	tallies, err := query.TallyRows(ctx, u.db, query.TallySpec{
		Table:  "prescriptions",
		Column: "prescriptions.medicine_detail",
		Where:  []query.Cond{query.C("prescriptions.medicine_detail <> ''")},
		Limit:  1,
	})
	if err != nil {
		u.log.Warnf("Failed to count prescriptions per medicine: %+v", err)
		return nil, err
	}
	if len(tallies) == 0 {
		return nil, nil
	}
	return &dto.MedicineCountResponse{Medicine: tallies[0].Value, Count: tallies[0].Count}, nil
}

func (u *reportUsecase) PatientAgeStats(ctx context.Context) (*dto.AgeStatsResponse, error) {
	now := u.now()

	patients, err := query.New[entity.Patient]().
		Where("patients.date_of_birth IS NOT NULL").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query patients: %+v", err)
		return nil, err
	}

	s := summarizeAges(patients, now)
	res := &dto.AgeStatsResponse{AverageAge: s.average(), PatientCount: s.count}
	if s.count > 0 {
		res.MinAge, res.MaxAge = &s.min, &s.max
	}
	return res, nil
}

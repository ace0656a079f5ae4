package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report parameters. Zero values are invalid; callers start from the
// documented defaults.

// WindowParams is a day window around now.
type WindowParams struct {
	Days int `json:"days" validate:"gt=0"`
}

// MinCountParams is a count threshold.
type MinCountParams struct {
	Min int64 `json:"min" validate:"gt=0"`
}

type BusyDoctorsParams struct {
	Min    int64 `json:"min" validate:"gt=0"`
	Months int   `json:"months" validate:"gt=0"`
}

type ActiveSurgeonsParams struct {
	Min  int64 `json:"min" validate:"gt=0"`
	Days int   `json:"days" validate:"gt=0"`
}

// PatientRangeParams bounds a count strictly between Min and Max.
type PatientRangeParams struct {
	Min  int64 `json:"min" validate:"gt=0"`
	Max  int64 `json:"max" validate:"gt=0,gtfield=Min"`
	Days int   `json:"days" validate:"gt=0"`
}

type SearchParams struct {
	Term string `json:"term" validate:"required,max=255"`
}

type ProviderParams struct {
	Provider string `json:"provider" validate:"required,max=255"`
}

type PrefixParams struct {
	Prefix string `json:"prefix" validate:"required,max=20"`
}

type LimitParams struct {
	Limit int `json:"limit" validate:"gt=0,lte=1000"`
}

// Report results

type DoctorCountResponse struct {
	Doctor DoctorResponse `json:"doctor"`
	Count  int64          `json:"count"`
}

type DepartmentCountResponse struct {
	Department DepartmentResponse `json:"department"`
	Count      int64              `json:"count"`
}

type PatientDoctorsResponse struct {
	Patient     PatientResponse  `json:"patient"`
	DoctorCount int64            `json:"doctor_count"`
	Doctors     []DoctorResponse `json:"doctors"`
}

type PatientPrescriptionsResponse struct {
	Patient           PatientResponse        `json:"patient"`
	LatestAppointment time.Time              `json:"latest_appointment"`
	Prescriptions     []PrescriptionResponse `json:"prescriptions"`
}

type InsuredSurgicalPatientResponse struct {
	Patient   PatientResponse   `json:"patient"`
	Insurance InsuranceResponse `json:"insurance"`
	Surgeries []SurgeryResponse `json:"surgeries"`
}

// AverageAgeResponse has a null average when no patient has a known date
// of birth.
type AverageAgeResponse struct {
	AverageAge   decimal.NullDecimal `json:"average_age"`
	PatientCount int64               `json:"patient_count"`
}

type AgeExtremesResponse struct {
	Oldest   *PatientResponse `json:"oldest"`
	Youngest *PatientResponse `json:"youngest"`
}

type AgeStatsResponse struct {
	MinAge       *int                `json:"min_age"`
	MaxAge       *int                `json:"max_age"`
	AverageAge   decimal.NullDecimal `json:"average_age"`
	PatientCount int64               `json:"patient_count"`
}

type SpecializationCountResponse struct {
	Specialization string `json:"specialization"`
	DoctorCount    int64  `json:"doctor_count"`
}

type ProviderCountResponse struct {
	Provider     string `json:"provider"`
	PatientCount int64  `json:"patient_count"`
}

type GenderCountResponse struct {
	Male        int64 `json:"male"`
	Female      int64 `json:"female"`
	Other       int64 `json:"other"`
	Unspecified int64 `json:"unspecified"`
}

type RepeatVisitResponse struct {
	Patient          PatientResponse `json:"patient"`
	Doctor           DoctorResponse  `json:"doctor"`
	AppointmentCount int64           `json:"appointment_count"`
}

type MedicineCountResponse struct {
	Medicine string `json:"medicine"`
	Count    int64  `json:"count"`
}

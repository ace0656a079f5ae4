// Package report names every read report so callers outside Go, the HTTP
// API and the command line, can run them by name with string parameters.
package report

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/usecase"
)

// ErrUnknownReport is returned by Run for a name that is not registered.
var ErrUnknownReport = errors.New("unknown report")

// Info describes a report and its parameters with their defaults.
type Info struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
}

type runner func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error)

type entry struct {
	info Info
	run  runner
}

// Registry runs reports by name.
type Registry struct {
	uc      usecase.ReportUsecase
	entries map[string]entry
}

func NewRegistry(uc usecase.ReportUsecase) *Registry {
	r := &Registry{uc: uc, entries: make(map[string]entry)}
	r.registerAll()
	return r
}

func (r *Registry) add(name, description string, params map[string]string, run runner) {
	r.entries[name] = entry{
		info: Info{Name: name, Description: description, Params: params},
		run:  run,
	}
}

// List returns every report sorted by name.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run parses values over the report's defaults and runs it. Unknown
// parameters are ignored; malformed ones yield a *usecase.ValidationError.
func (r *Registry) Run(ctx context.Context, name string, values url.Values) (any, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	return e.run(ctx, r.uc, &args{values: values, defaults: e.info.Params})
}

// args reads typed parameters, collecting parse failures by name.
type args struct {
	values   url.Values
	defaults map[string]string
	errs     map[string]string
}

func (a *args) raw(name string) string {
	if v := strings.TrimSpace(a.values.Get(name)); v != "" {
		return v
	}
	return a.defaults[name]
}

func (a *args) fail(name, msg string) {
	if a.errs == nil {
		a.errs = make(map[string]string)
	}
	a.errs[name] = msg
}

func (a *args) getInt64(name string) int64 {
	n, err := strconv.ParseInt(a.raw(name), 10, 64)
	if err != nil {
		a.fail(name, name+" must be an integer")
	}
	return n
}

func (a *args) getInt(name string) int {
	return int(a.getInt64(name))
}

func (a *args) getString(name string) string {
	return a.raw(name)
}

func (a *args) err() error {
	if len(a.errs) == 0 {
		return nil
	}
	return &usecase.ValidationError{Fields: a.errs}
}

// call finishes parsing and runs fn with the parsed parameters.
func call[P, R any](a *args, params P, fn func(P) (R, error)) (any, error) {
	if err := a.err(); err != nil {
		return nil, err
	}
	return fn(params)
}

func noParams[R any](fn func(context.Context) (R, error)) runner {
	return func(ctx context.Context, _ usecase.ReportUsecase, _ *args) (any, error) {
		return fn(ctx)
	}
}

func defaults(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func (r *Registry) registerAll() {
	uc := r.uc
	window := func(fn func(context.Context, dto.WindowParams) ([]dto.AppointmentResponse, error)) runner {
		return func(ctx context.Context, _ usecase.ReportUsecase, a *args) (any, error) {
			return call(a, dto.WindowParams{Days: a.getInt("days")}, func(p dto.WindowParams) ([]dto.AppointmentResponse, error) {
				return fn(ctx, p)
			})
		}
	}
	minCount := func(fn func(context.Context, dto.MinCountParams) (any, error)) runner {
		return func(ctx context.Context, _ usecase.ReportUsecase, a *args) (any, error) {
			return call(a, dto.MinCountParams{Min: a.getInt64("min")}, func(p dto.MinCountParams) (any, error) {
				return fn(ctx, p)
			})
		}
	}
	patients := func(fn func(context.Context) ([]dto.PatientResponse, error)) runner {
		return noParams(fn)
	}

	// Appointments
	r.add("upcoming-appointments", "Appointments dated within the next days, inclusive",
		defaults("days", "7"), window(uc.UpcomingAppointments))
	r.add("appointments-by-insurer", "Appointments of patients insured by provider, Sundays excluded",
		defaults("provider", "XYZ Insurance"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return uc.AppointmentsByInsurer(ctx, dto.ProviderParams{Provider: a.getString("provider")})
		})
	r.add("scheduled-appointments", "Scheduled appointments within the next days, by date",
		defaults("days", "30"), window(uc.ScheduledAppointments))
	r.add("appointments-by-specialization", "Appointments whose doctor specialization contains term",
		defaults("term", "Dermatology"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return uc.AppointmentsBySpecialization(ctx, dto.SearchParams{Term: a.getString("term")})
		})
	r.add("recent-prescriptions", "Prescriptions whose appointment falls within the last days",
		defaults("days", "7"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return call(a, dto.WindowParams{Days: a.getInt("days")}, func(p dto.WindowParams) ([]dto.PrescriptionResponse, error) {
				return uc.RecentPrescriptions(ctx, p)
			})
		})

	// Patients
	r.add("uninsured-recent-patients", "Uninsured patients with an appointment within the last days",
		defaults("days", "30"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return call(a, dto.WindowParams{Days: a.getInt("days")}, func(p dto.WindowParams) ([]dto.PatientResponse, error) {
				return uc.UninsuredRecentPatients(ctx, p)
			})
		})
	r.add("recent-patients-with-prescriptions", "Recently seen patients with their prescriptions, latest visit first",
		defaults("days", "30"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return call(a, dto.WindowParams{Days: a.getInt("days")}, func(p dto.WindowParams) ([]dto.PatientPrescriptionsResponse, error) {
				return uc.RecentPatientsWithPrescriptions(ctx, p)
			})
		})
	r.add("patients-with-appointment-or-surgery", "Patients with an appointment or a surgery", nil,
		patients(uc.PatientsWithAppointmentOrSurgery))
	r.add("patients-with-appointment-and-prescription", "Patients with an appointment and a prescription", nil,
		patients(uc.PatientsWithAppointmentAndPrescription))
	r.add("patients-with-appointment-without-prescription", "Patients with an appointment but no prescription", nil,
		patients(uc.PatientsWithAppointmentWithoutPrescription))
	r.add("uninsured-multi-doctor-patients", "Uninsured patients who saw more than min distinct doctors",
		defaults("min", "1"), minCount(func(ctx context.Context, p dto.MinCountParams) (any, error) {
			return uc.UninsuredMultiDoctorPatients(ctx, p)
		}))
	r.add("patients-by-medicine", "Patients prescribed a medicine containing term",
		defaults("term", "Painkiller"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return uc.PatientsByMedicine(ctx, dto.SearchParams{Term: a.getString("term")})
		})
	r.add("insured-surgical-patients", "Insured patients with surgeries", nil, noParams(uc.InsuredSurgicalPatients))
	r.add("patients-with-appointment-without-surgery", "Patients with an appointment but no surgery", nil,
		patients(uc.PatientsWithAppointmentWithoutSurgery))
	r.add("patients-with-appointment-prescription-and-surgery", "Patients with an appointment, a prescription and a surgery", nil,
		patients(uc.PatientsWithAppointmentPrescriptionAndSurgery))
	r.add("patients-by-last-name", "Patients whose last name starts with prefix",
		defaults("prefix", "S"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return uc.PatientsByLastName(ctx, dto.PrefixParams{Prefix: a.getString("prefix")})
		})
	r.add("patients-without-phone", "Patients without a phone number", nil, patients(uc.PatientsWithoutPhone))
	r.add("patients-with-surgery-without-prescription", "Patients with a surgery but no prescription", nil,
		patients(uc.PatientsWithSurgeryWithoutPrescription))

	// Doctors
	r.add("busy-doctors", "Doctors with more than min appointments within the last months",
		defaults("min", "10", "months", "6"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			p := dto.BusyDoctorsParams{Min: a.getInt64("min"), Months: a.getInt("months")}
			return call(a, p, func(p dto.BusyDoctorsParams) ([]dto.DoctorCountResponse, error) {
				return uc.BusyDoctors(ctx, p)
			})
		})
	r.add("prolific-prescribers", "Doctors with at least min prescriptions",
		defaults("min", "5"), minCount(func(ctx context.Context, p dto.MinCountParams) (any, error) {
			return uc.ProlificPrescribers(ctx, p)
		}))
	r.add("active-surgeon-ids", "Ids of doctors with at least min surgeries within the last days",
		defaults("min", "5", "days", "365"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			p := dto.ActiveSurgeonsParams{Min: a.getInt64("min"), Days: a.getInt("days")}
			return call(a, p, func(p dto.ActiveSurgeonsParams) ([]int64, error) {
				return uc.ActiveSurgeonIDs(ctx, p)
			})
		})
	r.add("specializations-by-doctor-count", "Specializations by number of doctors", nil,
		noParams(uc.SpecializationsByDoctorCount))
	r.add("doctors-by-patient-range", "Doctors whose distinct patients within the last days lie strictly between min and max",
		defaults("min", "5", "max", "15", "days", "365"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			p := dto.PatientRangeParams{Min: a.getInt64("min"), Max: a.getInt64("max"), Days: a.getInt("days")}
			return call(a, p, func(p dto.PatientRangeParams) ([]dto.DoctorCountResponse, error) {
				return uc.DoctorsByPatientRange(ctx, p)
			})
		})
	r.add("doctor-appointment-counts", "Every doctor with their appointment count", nil,
		noParams(uc.DoctorAppointmentCounts))
	r.add("top-surgeon", "Doctor with the most surgeries", nil, noParams(uc.TopSurgeon))
	r.add("repeat-visits", "Patient and doctor pairs with more than min appointments",
		defaults("min", "1"), minCount(func(ctx context.Context, p dto.MinCountParams) (any, error) {
			return uc.RepeatVisits(ctx, p)
		}))
	r.add("top-doctors-by-patients", "Doctors with the most related patients",
		defaults("limit", "5"),
		func(ctx context.Context, uc usecase.ReportUsecase, a *args) (any, error) {
			return call(a, dto.LimitParams{Limit: a.getInt("limit")}, func(p dto.LimitParams) ([]dto.DoctorCountResponse, error) {
				return uc.TopDoctorsByPatients(ctx, p)
			})
		})

	// Departments
	r.add("leaderless-departments", "Departments with at least min doctors and no head",
		defaults("min", "3"), minCount(func(ctx context.Context, p dto.MinCountParams) (any, error) {
			return uc.LeaderlessDepartments(ctx, p)
		}))
	r.add("departments-by-doctor-count", "Departments by number of doctors, largest first", nil,
		noParams(uc.DepartmentsByDoctorCount))
	r.add("department-heads", "Every department with its head doctor", nil, noParams(uc.DepartmentHeads))
	r.add("department-surgery-counts", "Every department with the surgeries performed by its doctors", nil,
		noParams(uc.DepartmentSurgeryCounts))
	r.add("staffed-departments", "Departments with at least min doctors",
		defaults("min", "10"), minCount(func(ctx context.Context, p dto.MinCountParams) (any, error) {
			return uc.StaffedDepartments(ctx, p)
		}))

	// Aggregates
	r.add("active-insurance-providers", "Providers covering at least one active patient", nil,
		noParams(uc.ActiveInsuranceProviders))
	r.add("surgical-only-average-age", "Average age of patients with surgeries and no appointments", nil,
		noParams(uc.SurgicalOnlyAverageAge))
	r.add("patient-age-extremes", "Oldest and youngest patients", nil, noParams(uc.PatientAgeExtremes))
	r.add("popular-insurance-providers", "Providers covering more than min patients",
		defaults("min", "5"), minCount(func(ctx context.Context, p dto.MinCountParams) (any, error) {
			return uc.PopularInsuranceProviders(ctx, p)
		}))
	r.add("gender-counts", "Patients per gender", nil, noParams(uc.GenderCounts))
	r.add("most-prescribed-medicine", "The most frequently prescribed medicine", nil,
		noParams(uc.MostPrescribedMedicine))
	r.add("patient-age-stats", "Minimum, maximum and average patient age", nil, noParams(uc.PatientAgeStats))
}

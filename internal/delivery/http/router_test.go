package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliveryHttp "hospital-management/internal/delivery/http"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/delivery/report"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/testutil"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	} `json:"meta"`
}

type server struct {
	handler http.Handler
	f       *testutil.Fixtures
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.Logger()
	v := validator.NewValidator()
	audit := service.NewAuditService(log)
	lock := service.NewSchedulingLockService(nil, log, time.Second, time.Second)
	t.Cleanup(lock.Stop)

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	deptRepo := repository.NewDepartmentRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	uc := deliveryHttp.Usecases{
		User:        usecase.NewUserUsecase(db, log, v, userRepo, audit),
		Patient:     usecase.NewPatientUsecase(db, log, v, userRepo, patientRepo, audit),
		Doctor:      usecase.NewDoctorUsecase(db, log, v, userRepo, doctorRepo, deptRepo, audit),
		Department:  usecase.NewDepartmentUsecase(db, log, v, deptRepo, doctorRepo, audit),
		Appointment: usecase.NewAppointmentUsecase(db, log, v, appointmentRepo, audit),
		Record: usecase.NewRecordUsecase(db, log, v,
			repository.NewInsuranceRepository(),
			repository.NewPrescriptionRepository(),
			repository.NewSurgeryRepository(),
			repository.NewPatientDoctorRepository(),
			appointmentRepo,
			audit,
		),
		Report:     usecase.NewReportUsecase(db, log, v, usecase.SystemClock, patientRepo, doctorRepo, deptRepo),
		Scheduling: usecase.NewSchedulingUsecase(db, log, v, usecase.SystemClock, appointmentRepo, doctorRepo, lock, audit),
	}

	router := deliveryHttp.NewRouter(
		log,
		uc,
		handler.NewReportHandler(report.NewRegistry(uc.Report), log),
		handler.NewSchedulingHandler(uc.Scheduling, log),
		middleware.NewCORSMiddleware(),
		middleware.NewRequestIDMiddleware(log),
	)

	return &server{handler: router.Setup(), f: testutil.NewFixtures(t, db)}
}

func (s *server) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" && path != "/health" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	rec, _ := s.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestReportRoutes(t *testing.T) {
	s := newServer(t)

	t.Run("list", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/reports", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var infos []report.Info
		require.NoError(t, json.Unmarshal(env.Data, &infos))
		assert.Len(t, infos, 39)
	})

	t.Run("run with defaults", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/reports/gender-counts", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.JSONEq(t, `{"male":0,"female":0,"other":0,"unspecified":0}`, string(env.Data))
	})

	t.Run("unknown report", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/reports/no-such-report", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
	})

	t.Run("bad parameter", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/reports/busy-doctors?min=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Error), "min")
	})
}

func TestPatientRoutes(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, http.MethodPost, "/patients", map[string]any{
		"user":          map[string]any{"email": "ann@example.com", "first_name": "Ann", "last_name": "Lee"},
		"date_of_birth": "1990-04-01",
		"gender":        "Female",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID   int64 `json:"id"`
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "ann@example.com", created.User.Email)

	rec, _ = s.do(t, http.MethodGet, fmt.Sprintf("/patients/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/patients?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.Equal(t, 10, env.Meta.Limit)

	rec, _ = s.do(t, http.MethodPut, fmt.Sprintf("/patients/%d", created.ID), map[string]any{"address": "1 Main St"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/patients/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, fmt.Sprintf("/patients/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	s := newServer(t)

	t.Run("malformed body", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/users", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/users", map[string]any{"email": "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Error), "email")
	})

	t.Run("duplicate email", func(t *testing.T) {
		body := map[string]any{"email": "dup@example.com"}
		rec, _ := s.do(t, http.MethodPost, "/users", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec, _ = s.do(t, http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing doctor", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/doctors/999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non numeric id does not route", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/doctors/abc", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSchedulingRoutes(t *testing.T) {
	s := newServer(t)

	t.Run("follow-ups for unknown doctor", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/doctors/999/follow-ups", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("matrix with defaults", func(t *testing.T) {
		p := s.f.Patient()
		d := s.f.Doctor()

		rec, env := s.do(t, http.MethodPost, "/appointments/matrix", nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var result struct {
			Created      int64 `json:"created"`
			Appointments []struct {
				PatientID int64 `json:"patient_id"`
				DoctorID  int64 `json:"doctor_id"`
			} `json:"appointments"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.EqualValues(t, 1, result.Created)
		assert.Equal(t, p.ID, result.Appointments[0].PatientID)
		assert.Equal(t, d.ID, result.Appointments[0].DoctorID)
	})

	t.Run("complete past", func(t *testing.T) {
		p := s.f.Patient()
		d := s.f.Doctor()
		s.f.Appointment(p.ID, d.ID, time.Now().UTC().Add(-24*time.Hour), entity.AppointmentStatusScheduled)

		rec, env := s.do(t, http.MethodPost, "/appointments/complete-past", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"affected":1}`, string(env.Data))
	})

	t.Run("bulk rejects an empty list", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/appointments/bulk", map[string]any{"appointments": []any{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

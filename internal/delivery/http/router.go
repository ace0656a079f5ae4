package http

import (
	"net/http"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Usecases groups everything the router exposes.
type Usecases struct {
	User        usecase.UserUsecase
	Patient     usecase.PatientUsecase
	Doctor      usecase.DoctorUsecase
	Department  usecase.DepartmentUsecase
	Appointment usecase.AppointmentUsecase
	Record      usecase.RecordUsecase
	Report      usecase.ReportUsecase
	Scheduling  usecase.SchedulingUsecase
}

type Router struct {
	router              *mux.Router
	log                 *logrus.Logger
	usecases            Usecases
	reportHandler       *handler.ReportHandler
	schedulingHandler   *handler.SchedulingHandler
	corsMiddleware      *middleware.CORSMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

func NewRouter(
	log *logrus.Logger,
	usecases Usecases,
	reportHandler *handler.ReportHandler,
	schedulingHandler *handler.SchedulingHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		log:                 log,
		usecases:            usecases,
		reportHandler:       reportHandler,
		schedulingHandler:   schedulingHandler,
		corsMiddleware:      corsMiddleware,
		requestIDMiddleware: requestIDMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Reports
	api.HandleFunc("/reports", r.reportHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/reports/{name}", r.reportHandler.Run).Methods(http.MethodGet)

	// Scheduling, registered before the CRUD routes so the literal paths win
	api.HandleFunc("/appointments/complete-past", r.schedulingHandler.CompletePast).Methods(http.MethodPost)
	api.HandleFunc("/appointments/matrix", r.schedulingHandler.Matrix).Methods(http.MethodPost)
	api.HandleFunc("/appointments/bulk", r.schedulingHandler.Bulk).Methods(http.MethodPost)
	api.HandleFunc("/doctors/{id:[0-9]+}/follow-ups", r.schedulingHandler.FollowUps).Methods(http.MethodPost)

	// Entities
	uc := r.usecases
	handler.NewEntityHandler("User", handler.Operations[dto.CreateUserRequest, dto.UpdateUserRequest, dto.UserResponse]{
		Create: uc.User.Create, GetAll: uc.User.GetAll, GetByID: uc.User.GetByID, Update: uc.User.Update, Delete: uc.User.Delete,
	}, r.log).Register(api, "/users")
	handler.NewEntityHandler("Patient", handler.Operations[dto.CreatePatientRequest, dto.UpdatePatientRequest, dto.PatientResponse]{
		Create: uc.Patient.Create, GetAll: uc.Patient.GetAll, GetByID: uc.Patient.GetByID, Update: uc.Patient.Update, Delete: uc.Patient.Delete,
	}, r.log).Register(api, "/patients")
	handler.NewEntityHandler("Doctor", handler.Operations[dto.CreateDoctorRequest, dto.UpdateDoctorRequest, dto.DoctorResponse]{
		Create: uc.Doctor.Create, GetAll: uc.Doctor.GetAll, GetByID: uc.Doctor.GetByID, Update: uc.Doctor.Update, Delete: uc.Doctor.Delete,
	}, r.log).Register(api, "/doctors")
	handler.NewEntityHandler("Department", handler.Operations[dto.CreateDepartmentRequest, dto.UpdateDepartmentRequest, dto.DepartmentResponse]{
		Create: uc.Department.Create, GetAll: uc.Department.GetAll, GetByID: uc.Department.GetByID, Update: uc.Department.Update, Delete: uc.Department.Delete,
	}, r.log).Register(api, "/departments")
	handler.NewEntityHandler("Appointment", handler.Operations[dto.CreateAppointmentRequest, dto.UpdateAppointmentRequest, dto.AppointmentResponse]{
		Create: uc.Appointment.Create, GetAll: uc.Appointment.GetAll, GetByID: uc.Appointment.GetByID, Update: uc.Appointment.Update, Delete: uc.Appointment.Delete,
	}, r.log).Register(api, "/appointments")

	// Records
	rec := uc.Record
	handler.NewEntityHandler("Insurance", handler.Operations[dto.CreateInsuranceRequest, dto.UpdateInsuranceRequest, dto.InsuranceResponse]{
		Create: rec.CreateInsurance, GetAll: rec.GetInsurances, GetByID: rec.GetInsurance, Update: rec.UpdateInsurance, Delete: rec.DeleteInsurance,
	}, r.log).Register(api, "/insurances")
	handler.NewEntityHandler("Prescription", handler.Operations[dto.CreatePrescriptionRequest, dto.UpdatePrescriptionRequest, dto.PrescriptionResponse]{
		Create: rec.CreatePrescription, GetAll: rec.GetPrescriptions, GetByID: rec.GetPrescription, Update: rec.UpdatePrescription, Delete: rec.DeletePrescription,
	}, r.log).Register(api, "/prescriptions")
	handler.NewEntityHandler("Surgery", handler.Operations[dto.CreateSurgeryRequest, dto.UpdateSurgeryRequest, dto.SurgeryResponse]{
		Create: rec.CreateSurgery, GetAll: rec.GetSurgeries, GetByID: rec.GetSurgery, Update: rec.UpdateSurgery, Delete: rec.DeleteSurgery,
	}, r.log).Register(api, "/surgeries")
	handler.NewEntityHandler("Relationship", handler.Operations[dto.CreateRelationshipRequest, dto.UpdateRelationshipRequest, dto.RelationshipResponse]{
		Create: rec.CreateRelationship, GetAll: rec.GetRelationships, GetByID: rec.GetRelationship, Update: rec.UpdateRelationship, Delete: rec.DeleteRelationship,
	}, r.log).Register(api, "/relationships")

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

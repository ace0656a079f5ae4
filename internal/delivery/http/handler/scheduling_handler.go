package handler

import (
	"net/http"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

type SchedulingHandler struct {
	schedulingUsecase usecase.SchedulingUsecase
	log               *logrus.Logger
}

func NewSchedulingHandler(schedulingUsecase usecase.SchedulingUsecase, log *logrus.Logger) *SchedulingHandler {
	return &SchedulingHandler{schedulingUsecase: schedulingUsecase, log: log}
}

// CompletePast handles marking past scheduled appointments completed
// @Summary Complete past appointments
// @Tags Scheduling
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/complete-past [post]
func (h *SchedulingHandler) CompletePast(w http.ResponseWriter, r *http.Request) {
	result, err := h.schedulingUsecase.CompletePastAppointments(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to complete past appointments")
		return
	}

	response.Success(w, http.StatusOK, "Past appointments completed", result)
}

// FollowUps handles booking follow-ups for a doctor's previous patients
// @Summary Schedule follow-ups
// @Tags Scheduling
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/follow-ups [post]
func (h *SchedulingHandler) FollowUps(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.schedulingUsecase.ScheduleFollowUps(r.Context(), doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to schedule follow-ups")
		return
	}

	response.Success(w, http.StatusCreated, "Follow-ups scheduled", result)
}

// Matrix handles booking every pairing of the first patients and doctors.
// An empty body uses the defaults.
// @Summary Schedule appointment matrix
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param request body dto.ScheduleMatrixRequest false "Matrix size"
// @Success 201 {object} response.Response
// @Router /appointments/matrix [post]
func (h *SchedulingHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	req := dto.DefaultScheduleMatrixRequest()
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	result, err := h.schedulingUsecase.ScheduleMatrix(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "Failed to schedule appointment matrix")
		return
	}

	response.Success(w, http.StatusCreated, "Appointments scheduled", result)
}

// Bulk handles creating a list of appointments atomically
// @Summary Bulk create appointments
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param request body dto.BulkCreateAppointmentsRequest true "Appointments"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/bulk [post]
func (h *SchedulingHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkCreateAppointmentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.schedulingUsecase.BulkCreateAppointments(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create appointments")
		return
	}

	response.Success(w, http.StatusCreated, "Appointments created", result)
}

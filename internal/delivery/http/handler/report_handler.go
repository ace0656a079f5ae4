package handler

import (
	"net/http"

	"hospital-management/internal/delivery/report"
	"hospital-management/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	registry *report.Registry
	log      *logrus.Logger
}

func NewReportHandler(registry *report.Registry, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{registry: registry, log: log}
}

// List handles listing the available reports
// @Summary List reports
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Response
// @Router /reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Reports retrieved successfully", h.registry.List())
}

// Run handles running one report; query parameters override its defaults
// @Summary Run a report
// @Tags Reports
// @Produce json
// @Param name path string true "Report name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/{name} [get]
func (h *ReportHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	result, err := h.registry.Run(r.Context(), name, r.URL.Query())
	if err != nil {
		writeError(w, h.log, err, "Failed to run report")
		return
	}

	response.Success(w, http.StatusOK, "Report "+name+" generated successfully", result)
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/report"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, report.ErrUnknownReport):
		response.NotFound(w, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, repository.ErrConstraintViolation):
		response.Conflict(w, err.Error())
	case errors.Is(err, service.ErrLockTimeout):
		response.Error(w, http.StatusServiceUnavailable, "Scheduling is busy, retry later", nil)
	default:
		log.Errorf("%s: %+v", fallback, err)
		response.InternalServerError(w, fallback)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

// decodeOptionalJSON is decodeJSON that leaves dst untouched on an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// listRequest reads page and limit, keeping defaults for absent values.
func listRequest(r *http.Request) dto.ListRequest {
	req := dto.DefaultListRequest()
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		req.Limit = v
	}
	return req
}

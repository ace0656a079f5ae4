package handler

import (
	"context"
	"net/http"

	"hospital-management/internal/delivery/dto"
	"hospital-management/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Operations is the CRUD surface of one entity usecase. C and U are the
// create and update requests, R the response.
type Operations[C, U, R any] struct {
	Create  func(ctx context.Context, req *C) (*R, error)
	GetAll  func(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[R], error)
	GetByID func(ctx context.Context, id int64) (*R, error)
	Update  func(ctx context.Context, id int64, req *U) (*R, error)
	Delete  func(ctx context.Context, id int64) error
}

// EntityHandler serves create, list, get, update and delete for one entity.
type EntityHandler[C, U, R any] struct {
	name string
	ops  Operations[C, U, R]
	log  *logrus.Logger
}

func NewEntityHandler[C, U, R any](name string, ops Operations[C, U, R], log *logrus.Logger) *EntityHandler[C, U, R] {
	return &EntityHandler[C, U, R]{name: name, ops: ops, log: log}
}

// Register mounts the handler under prefix, e.g. "/patients".
func (h *EntityHandler[C, U, R]) Register(router *mux.Router, prefix string) {
	router.HandleFunc(prefix, h.Create).Methods(http.MethodPost)
	router.HandleFunc(prefix, h.GetAll).Methods(http.MethodGet)
	router.HandleFunc(prefix+"/{id:[0-9]+}", h.GetByID).Methods(http.MethodGet)
	router.HandleFunc(prefix+"/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	router.HandleFunc(prefix+"/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}

func (h *EntityHandler[C, U, R]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.ops.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create "+h.name)
		return
	}

	response.Success(w, http.StatusCreated, h.name+" created successfully", created)
}

func (h *EntityHandler[C, U, R]) GetAll(w http.ResponseWriter, r *http.Request) {
	page, err := h.ops.GetAll(r.Context(), listRequest(r))
	if err != nil {
		writeError(w, h.log, err, "Failed to list "+h.name)
		return
	}

	meta := response.NewMeta(page.Page, page.Limit, page.Total)
	response.SuccessWithMeta(w, http.StatusOK, h.name+" list retrieved successfully", page.Items, meta)
}

func (h *EntityHandler[C, U, R]) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.ops.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "Failed to get "+h.name)
		return
	}

	response.Success(w, http.StatusOK, h.name+" retrieved successfully", found)
}

func (h *EntityHandler[C, U, R]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req U
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.ops.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update "+h.name)
		return
	}

	response.Success(w, http.StatusOK, h.name+" updated successfully", updated)
}

func (h *EntityHandler[C, U, R]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ops.Delete(r.Context(), id); err != nil {
		writeError(w, h.log, err, "Failed to delete "+h.name)
		return
	}

	response.Success(w, http.StatusOK, h.name+" deleted successfully", nil)
}

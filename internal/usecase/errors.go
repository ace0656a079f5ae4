package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"hospital-management/internal/domain/repository"
	"hospital-management/pkg/validator"
)

var (
	ErrUserNotFound         = fmt.Errorf("user: %w", repository.ErrNotFound)
	ErrPatientNotFound      = fmt.Errorf("patient: %w", repository.ErrNotFound)
	ErrDoctorNotFound       = fmt.Errorf("doctor: %w", repository.ErrNotFound)
	ErrDepartmentNotFound   = fmt.Errorf("department: %w", repository.ErrNotFound)
	ErrInsuranceNotFound    = fmt.Errorf("insurance: %w", repository.ErrNotFound)
	ErrAppointmentNotFound  = fmt.Errorf("appointment: %w", repository.ErrNotFound)
	ErrPrescriptionNotFound = fmt.Errorf("prescription: %w", repository.ErrNotFound)
	ErrSurgeryNotFound      = fmt.Errorf("surgery: %w", repository.ErrNotFound)
	ErrRelationshipNotFound = fmt.Errorf("relationship: %w", repository.ErrNotFound)

	ErrPrescriptionMismatch = fmt.Errorf("prescription patient and doctor must match the appointment: %w", repository.ErrConstraintViolation)
	ErrHeadNotInDepartment  = fmt.Errorf("head doctor must belong to the department: %w", repository.ErrConstraintViolation)

	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists malformed parameters by field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e.Fields[k]
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// validateParams runs struct validation and converts failures into a
// *ValidationError.
func validateParams(v *validator.CustomValidator, params any) error {
	if err := v.Validate(params); err != nil {
		fields := v.FormatValidationErrors(err)
		if len(fields) == 0 {
			return &ValidationError{Fields: map[string]string{"params": err.Error()}}
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

// notFoundAs replaces a bare store NotFound with an entity sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

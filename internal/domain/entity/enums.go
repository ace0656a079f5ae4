package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum is returned by save hooks when a closed enumeration holds
// a value outside its set.
var ErrInvalidEnum = errors.New("invalid enumeration value")

// Gender represents a patient's recorded gender
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// RelationshipType classifies a patient-doctor relationship
type RelationshipType string

const (
	RelationshipPrimaryCare  RelationshipType = "Primary_Care"
	RelationshipConsultation RelationshipType = "Consultation"
	RelationshipSpecialist   RelationshipType = "Specialist"
)

func (r RelationshipType) Valid() bool {
	switch r {
	case RelationshipPrimaryCare, RelationshipConsultation, RelationshipSpecialist:
		return true
	}
	return false
}

func invalidEnum(field string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidEnum, field, value)
}

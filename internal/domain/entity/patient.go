package entity

import (
	"time"

	"gorm.io/gorm"
)

// Patient represents the patient profile attached to a user
type Patient struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      *Gender    `gorm:"type:varchar(10);index" json:"gender,omitempty"`
	Address     string     `gorm:"type:text" json:"address,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeSave(tx *gorm.DB) error {
	if p.Gender != nil && !p.Gender.Valid() {
		return invalidEnum("gender", *p.Gender)
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.UTC()
		p.DateOfBirth = &dob
	}
	return nil
}

// AgeAt returns completed years at the given instant, or false when the
// date of birth is unknown.
func (p *Patient) AgeAt(at time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	return AgeAt(*p.DateOfBirth, at), true
}

// AgeAt counts whole years between dob and at; a birthday later in the
// year than at has not been reached yet.
func AgeAt(dob, at time.Time) int {
	dob = dob.UTC()
	at = at.UTC()
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

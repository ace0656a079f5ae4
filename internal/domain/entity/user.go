package entity

import (
	"strings"
	"time"
)

// User represents the account every patient and doctor profile hangs off
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName   string     `gorm:"type:varchar(20)" json:"first_name,omitempty"`
	LastName    string     `gorm:"type:varchar(20);index" json:"last_name,omitempty"`
	PhoneNumber *string    `gorm:"type:varchar(11)" json:"phone_number,omitempty"`
	IsActive    *bool      `gorm:"not null;default:true;index" json:"is_active"`
	IsStaff     bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	DateJoined  time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, skipping empty parts
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Active reports the account flag, treating an unset flag as active
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

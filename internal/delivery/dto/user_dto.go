package dto

import "time"

// Request DTOs

type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	FirstName   string  `json:"first_name" validate:"max=20"`
	LastName    string  `json:"last_name" validate:"max=20"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=11"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
}

type UpdateUserRequest struct {
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=20"`
	LastName    *string `json:"last_name" validate:"omitempty,max=20"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=11"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// Response DTOs

type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

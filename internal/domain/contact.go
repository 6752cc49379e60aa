package domain

import "time"

// Contact belongs to exactly one user; every query is scoped by UserID.
type Contact struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	AdditionalInfo *string    `json:"additional_info,omitempty"`
	UserID         int64      `json:"-"`
}

type CreateContactRequest struct {
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    string  `json:"phone_number" validate:"required"`
	Birthday       string  `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	AdditionalInfo *string `json:"additional_info"`
}

// ContactFilter carries the optional search criteria. Empty fields are
// skipped; non-empty fields match case-insensitive substrings.
type ContactFilter struct {
	FirstName string
	LastName  string
	Email     string
}

package models

import "time"

// Instructor represents a flight instructor on staff.
type Instructor struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Rating        string     `json:"rating" db:"rating"` // e.g. A-cat, B-cat, C-cat
	LicenceNumber string     `json:"licence_number,omitempty" db:"licence_number"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	User *User `json:"user,omitempty"`
}

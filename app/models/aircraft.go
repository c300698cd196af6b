package models

import "time"

// Aircraft represents a club aircraft available for booking.
type Aircraft struct {
	ID           string         `json:"id" db:"id"`
	Registration string         `json:"registration" db:"registration"`
	Make         string         `json:"make" db:"make"`
	Model        string         `json:"model" db:"model"`
	Type         string         `json:"type,omitempty" db:"type"`
	Status       AircraftStatus `json:"status" db:"status"`
	Seats        int            `json:"seats" db:"seats"`
	HourlyRate   float64        `json:"hourly_rate" db:"hourly_rate"`
	CurrentHobbs float64        `json:"current_hobbs" db:"current_hobbs"`
	CurrentTach  float64        `json:"current_tach" db:"current_tach"`
	Notes        string         `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time     `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsBookable returns true if the aircraft can accept new bookings.
func (a *Aircraft) IsBookable() bool {
	return a.Status == AircraftOnline && a.DeletedAt == nil
}

package models

import "time"

// Booking reserves an aircraft, and optionally an instructor, for a time
// window. It is the single record the conflict detector and the lifecycle
// machine both operate on; cancellation is a terminal soft state.
type Booking struct {
	ID           string        `json:"id" db:"id"`
	AircraftID   string        `json:"aircraft_id" db:"aircraft_id"`
	InstructorID *string       `json:"instructor_id,omitempty" db:"instructor_id"`
	UserID       *string       `json:"user_id,omitempty" db:"user_id"` // nil = unassigned slot
	StartTime    time.Time     `json:"start_time" db:"start_time"`
	EndTime      time.Time     `json:"end_time" db:"end_time"`
	Status       BookingStatus `json:"status" db:"status"`
	FlightType   FlightType    `json:"flight_type" db:"flight_type"`
	Remarks      string        `json:"remarks,omitempty" db:"remarks"`

	// Meter readings captured at check-out and check-in.
	HobbsStart *float64 `json:"hobbs_start,omitempty" db:"hobbs_start"`
	HobbsEnd   *float64 `json:"hobbs_end,omitempty" db:"hobbs_end"`
	TachStart  *float64 `json:"tach_start,omitempty" db:"tach_start"`
	TachEnd    *float64 `json:"tach_end,omitempty" db:"tach_end"`
	FlightTime *float64 `json:"flight_time,omitempty" db:"flight_time"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	AircraftRegistration string `json:"aircraft_registration,omitempty"`
	InstructorName       string `json:"instructor_name,omitempty"`
	MemberName           string `json:"member_name,omitempty"`
}

// IsCancelled reports whether the booking is in the terminal cancelled state.
func (b *Booking) IsCancelled() bool {
	return b.CancelledAt != nil || b.Status == BookingCancelled
}

// OverlapsWindow applies the half-open overlap rule
// [start, end) x [b.StartTime, b.EndTime): strict < / > so that a booking
// ending exactly when another starts does not conflict.
func (b *Booking) OverlapsWindow(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

package models

import "time"

// TrainingRecord captures the instructional outcome of a flight. A shell
// record is created automatically at check-in for dual bookings and filled
// in by the instructor at debrief.
type TrainingRecord struct {
	ID           string     `json:"id" db:"id"`
	BookingID    string     `json:"booking_id" db:"booking_id"`
	MemberID     string     `json:"member_id" db:"member_id"`
	InstructorID string     `json:"instructor_id" db:"instructor_id"`
	Lesson       string     `json:"lesson" db:"lesson"`
	Comments     string     `json:"comments,omitempty" db:"comments"`
	Outcome      string     `json:"outcome,omitempty" db:"outcome"` // pass, repeat, incomplete
	DualTime     float64    `json:"dual_time" db:"dual_time"`
	SoloTime     float64    `json:"solo_time" db:"solo_time"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

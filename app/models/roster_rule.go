package models

import "time"

// RosterRule is a recurring weekly availability window for an instructor.
// Times are minute-precision time-of-day strings ("HH:MM"); day_of_week is
// 0-6 with 0 = Sunday, matching Go's time.Weekday.
type RosterRule struct {
	ID             string     `json:"id" db:"id"`
	InstructorID   string     `json:"instructor_id" db:"instructor_id"`
	DayOfWeek      int        `json:"day_of_week" db:"day_of_week"`
	StartTime      string     `json:"start_time" db:"start_time"`
	EndTime        string     `json:"end_time" db:"end_time"`
	EffectiveFrom  time.Time  `json:"effective_from" db:"effective_from"`
	EffectiveUntil *time.Time `json:"effective_until,omitempty" db:"effective_until"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	VoidedAt       *time.Time `json:"voided_at,omitempty" db:"voided_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// IsVoided returns true once the rule has been soft-deleted.
func (r *RosterRule) IsVoided() bool {
	return r.VoidedAt != nil
}

// InEffectOn reports whether the rule's effective date range covers date.
// EffectiveUntil nil means open-ended.
func (r *RosterRule) InEffectOn(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	from := time.Date(r.EffectiveFrom.Year(), r.EffectiveFrom.Month(), r.EffectiveFrom.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(from) {
		return false
	}
	if r.EffectiveUntil != nil {
		until := time.Date(r.EffectiveUntil.Year(), r.EffectiveUntil.Month(), r.EffectiveUntil.Day(), 0, 0, 0, 0, time.UTC)
		if day.After(until) {
			return false
		}
	}
	return true
}

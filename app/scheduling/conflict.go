package scheduling

import (
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// ProposedBooking is the candidate the conflict detector checks. ExcludeID
// lets an edit-in-place skip the booking being edited.
type ProposedBooking struct {
	AircraftID   string
	InstructorID *string
	StartTime    time.Time
	EndTime      time.Time
	ExcludeID    string
}

// Conflicts reports which resource of a proposed booking clashes with an
// existing one.
type Conflicts struct {
	Aircraft   bool `json:"aircraft_conflict"`
	Instructor bool `json:"instructor_conflict"`
}

// Any reports whether either resource conflicts.
func (c Conflicts) Any() bool {
	return c.Aircraft || c.Instructor
}

// FindConflicts checks a proposed booking against existing bookings.
// Cancelled bookings never conflict, a booking never conflicts with itself,
// and the overlap rule is strict half-open: existing.start < proposed.end
// AND existing.end > proposed.start, so back-to-back bookings are fine.
//
// This check is advisory. The bookings table's exclusion constraints are the
// authoritative arbiter at write time (see schema.sql); a write rejected
// there surfaces as database.ErrBookingConflict.
func FindConflicts(proposed ProposedBooking, existing []models.Booking) Conflicts {
	var conflicts Conflicts
	for i := range existing {
		b := &existing[i]
		if b.IsCancelled() {
			continue
		}
		if proposed.ExcludeID != "" && b.ID == proposed.ExcludeID {
			continue
		}
		if !b.OverlapsWindow(proposed.StartTime, proposed.EndTime) {
			continue
		}
		if b.AircraftID == proposed.AircraftID {
			conflicts.Aircraft = true
		}
		if proposed.InstructorID != nil && b.InstructorID != nil && *b.InstructorID == *proposed.InstructorID {
			conflicts.Instructor = true
		}
		if conflicts.Aircraft && conflicts.Instructor {
			break
		}
	}
	return conflicts
}

// UnavailableResources collects every aircraft and instructor tied up by a
// non-cancelled booking overlapping [start, end). Used by the availability
// endpoint to grey out resources before a booking form is submitted.
func UnavailableResources(existing []models.Booking, start, end time.Time, excludeID string) (aircraftIDs, instructorIDs map[string]struct{}) {
	aircraftIDs = make(map[string]struct{})
	instructorIDs = make(map[string]struct{})
	for i := range existing {
		b := &existing[i]
		if b.IsCancelled() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if !b.OverlapsWindow(start, end) {
			continue
		}
		aircraftIDs[b.AircraftID] = struct{}{}
		if b.InstructorID != nil {
			instructorIDs[*b.InstructorID] = struct{}{}
		}
	}
	return aircraftIDs, instructorIDs
}

package scheduling

import (
	"testing"
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

func strPtr(s string) *string { return &s }

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 11, hour, min, 0, 0, time.UTC)
}

func existingBooking(id, aircraftID string, instructorID *string, start, end time.Time) models.Booking {
	return models.Booking{
		ID:           id,
		AircraftID:   aircraftID,
		InstructorID: instructorID,
		StartTime:    start,
		EndTime:      end,
		Status:       models.BookingConfirmed,
	}
}

func TestFindConflictsAircraftOverlap(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", "ac-1", nil, at(10, 0), at(12, 0)),
	}

	got := FindConflicts(ProposedBooking{
		AircraftID: "ac-1",
		StartTime:  at(11, 0),
		EndTime:    at(13, 0),
	}, existing)
	if !got.Aircraft {
		t.Errorf("overlapping same aircraft should conflict")
	}
	if got.Instructor {
		t.Errorf("no instructor on either side, instructor conflict = true")
	}

	got = FindConflicts(ProposedBooking{
		AircraftID: "ac-2",
		StartTime:  at(11, 0),
		EndTime:    at(13, 0),
	}, existing)
	if got.Any() {
		t.Errorf("different aircraft should not conflict: %+v", got)
	}
}

func TestFindConflictsInstructorOverlap(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", "ac-1", strPtr("ins-1"), at(10, 0), at(12, 0)),
	}

	got := FindConflicts(ProposedBooking{
		AircraftID:   "ac-2",
		InstructorID: strPtr("ins-1"),
		StartTime:    at(11, 0),
		EndTime:      at(13, 0),
	}, existing)
	if got.Aircraft {
		t.Errorf("different aircraft should not mark an aircraft conflict")
	}
	if !got.Instructor {
		t.Errorf("shared instructor with overlap should conflict")
	}

	// A solo proposal never raises an instructor conflict.
	got = FindConflicts(ProposedBooking{
		AircraftID: "ac-2",
		StartTime:  at(11, 0),
		EndTime:    at(13, 0),
	}, existing)
	if got.Instructor {
		t.Errorf("nil proposed instructor must not conflict")
	}
}

func TestFindConflictsAdjacentBookingsDoNotConflict(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", "ac-1", strPtr("ins-1"), at(10, 0), at(12, 0)),
	}

	// Back-to-back: proposed starts exactly when existing ends.
	got := FindConflicts(ProposedBooking{
		AircraftID:   "ac-1",
		InstructorID: strPtr("ins-1"),
		StartTime:    at(12, 0),
		EndTime:      at(14, 0),
	}, existing)
	if got.Any() {
		t.Errorf("adjacent bookings must not conflict: %+v", got)
	}

	// And the mirror case: proposed ends exactly when existing starts.
	got = FindConflicts(ProposedBooking{
		AircraftID:   "ac-1",
		InstructorID: strPtr("ins-1"),
		StartTime:    at(8, 0),
		EndTime:      at(10, 0),
	}, existing)
	if got.Any() {
		t.Errorf("adjacent bookings must not conflict: %+v", got)
	}
}

func TestFindConflictsSymmetry(t *testing.T) {
	a := existingBooking("a", "ac-1", nil, at(9, 0), at(11, 0))
	b := existingBooking("b", "ac-1", nil, at(10, 0), at(12, 0))

	aConflictsB := FindConflicts(ProposedBooking{
		AircraftID: a.AircraftID, StartTime: a.StartTime, EndTime: a.EndTime,
	}, []models.Booking{b}).Aircraft
	bConflictsA := FindConflicts(ProposedBooking{
		AircraftID: b.AircraftID, StartTime: b.StartTime, EndTime: b.EndTime,
	}, []models.Booking{a}).Aircraft

	if aConflictsB != bConflictsA {
		t.Errorf("overlap must be commutative: a->b %v, b->a %v", aConflictsB, bConflictsA)
	}
}

func TestFindConflictsIgnoresCancelledAndSelf(t *testing.T) {
	cancelledAt := at(9, 0)
	cancelled := existingBooking("b1", "ac-1", strPtr("ins-1"), at(10, 0), at(12, 0))
	cancelled.Status = models.BookingCancelled
	cancelled.CancelledAt = &cancelledAt

	softCancelled := existingBooking("b2", "ac-1", strPtr("ins-1"), at(10, 0), at(12, 0))
	softCancelled.CancelledAt = &cancelledAt

	self := existingBooking("b3", "ac-1", strPtr("ins-1"), at(10, 0), at(12, 0))

	existing := []models.Booking{cancelled, softCancelled, self}

	got := FindConflicts(ProposedBooking{
		AircraftID:   "ac-1",
		InstructorID: strPtr("ins-1"),
		StartTime:    at(10, 0),
		EndTime:      at(12, 0),
		ExcludeID:    "b3",
	}, existing)
	if got.Any() {
		t.Errorf("cancelled bookings and the excluded booking itself must not conflict: %+v", got)
	}
}

func TestUnavailableResources(t *testing.T) {
	existing := []models.Booking{
		existingBooking("b1", "ac-1", strPtr("ins-1"), at(10, 0), at(12, 0)),
		existingBooking("b2", "ac-2", nil, at(9, 0), at(10, 30)),
		existingBooking("b3", "ac-3", strPtr("ins-2"), at(13, 0), at(15, 0)),
	}

	aircraftIDs, instructorIDs := UnavailableResources(existing, at(10, 0), at(11, 0), "")
	if _, ok := aircraftIDs["ac-1"]; !ok {
		t.Errorf("ac-1 should be unavailable")
	}
	if _, ok := aircraftIDs["ac-2"]; !ok {
		t.Errorf("ac-2 should be unavailable")
	}
	if _, ok := aircraftIDs["ac-3"]; ok {
		t.Errorf("ac-3 booking is outside the window")
	}
	if _, ok := instructorIDs["ins-1"]; !ok {
		t.Errorf("ins-1 should be unavailable")
	}
	if _, ok := instructorIDs["ins-2"]; ok {
		t.Errorf("ins-2 booking is outside the window")
	}

	// Excluding b1 frees both its aircraft and its instructor.
	aircraftIDs, instructorIDs = UnavailableResources(existing, at(10, 0), at(11, 0), "b1")
	if _, ok := aircraftIDs["ac-1"]; ok {
		t.Errorf("excluded booking must not block its aircraft")
	}
	if _, ok := instructorIDs["ins-1"]; ok {
		t.Errorf("excluded booking must not block its instructor")
	}
}

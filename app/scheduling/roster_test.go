package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// Wednesday 2025-06-11.
var rosterDate = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

func makeRule(instructorID string, day int, start, end string) models.RosterRule {
	return models.RosterRule{
		ID:            instructorID + "-" + start,
		InstructorID:  instructorID,
		DayOfWeek:     day,
		StartTime:     start,
		EndTime:       end,
		EffectiveFrom: rosterDate.AddDate(0, -1, 0),
		IsActive:      true,
	}
}

func TestRosteredInstructorsForCoveringRule(t *testing.T) {
	rules := []models.RosterRule{
		makeRule("ins-1", 3, "07:30", "22:00"),
		makeRule("ins-2", 3, "13:00", "17:00"),
	}

	got, err := RosteredInstructorsFor(rules, rosterDate, "11:00", "12:00")
	if err != nil {
		t.Fatalf("RosteredInstructorsFor: %v", err)
	}
	if _, ok := got["ins-1"]; !ok {
		t.Errorf("ins-1 rostered 07:30-22:00 should cover 11:00-12:00")
	}
	if _, ok := got["ins-2"]; ok {
		t.Errorf("ins-2 rostered 13:00-17:00 should not cover 11:00-12:00")
	}
}

func TestRosteredInstructorsForEndOfShift(t *testing.T) {
	rules := []models.RosterRule{makeRule("ins-1", 3, "07:30", "22:00")}

	// Interval containment is end-inclusive: a booking ending exactly at
	// shift end still qualifies.
	got, err := RosteredInstructorsFor(rules, rosterDate, "20:00", "22:00")
	if err != nil {
		t.Fatalf("RosteredInstructorsFor: %v", err)
	}
	if _, ok := got["ins-1"]; !ok {
		t.Errorf("booking ending at shift end should still qualify")
	}

	// But one minute past the shift does not.
	got, err = RosteredInstructorsFor(rules, rosterDate, "20:00", "22:01")
	if err != nil {
		t.Fatalf("RosteredInstructorsFor: %v", err)
	}
	if _, ok := got["ins-1"]; ok {
		t.Errorf("booking past shift end must not qualify")
	}
}

func TestRosteredInstructorsForExcludesInactiveAndVoided(t *testing.T) {
	voided := makeRule("ins-voided", 3, "07:30", "22:00")
	now := time.Now()
	voided.VoidedAt = &now

	inactive := makeRule("ins-inactive", 3, "07:30", "22:00")
	inactive.IsActive = false

	rules := []models.RosterRule{voided, inactive, makeRule("ins-ok", 3, "07:30", "22:00")}

	got, err := RosteredInstructorsFor(rules, rosterDate, "11:00", "12:00")
	if err != nil {
		t.Fatalf("RosteredInstructorsFor: %v", err)
	}
	if _, ok := got["ins-voided"]; ok {
		t.Errorf("voided rule must never roster its instructor")
	}
	if _, ok := got["ins-inactive"]; ok {
		t.Errorf("inactive rule must never roster its instructor")
	}
	if _, ok := got["ins-ok"]; !ok {
		t.Errorf("active rule should roster its instructor")
	}
}

func TestRosteredInstructorsForWeekdayAndEffectiveRange(t *testing.T) {
	wrongDay := makeRule("ins-tuesday", 2, "07:30", "22:00")

	notYet := makeRule("ins-future", 3, "07:30", "22:00")
	notYet.EffectiveFrom = rosterDate.AddDate(0, 0, 7)

	lapsed := makeRule("ins-lapsed", 3, "07:30", "22:00")
	until := rosterDate.AddDate(0, 0, -1)
	lapsed.EffectiveUntil = &until

	boundary := makeRule("ins-boundary", 3, "07:30", "22:00")
	edge := rosterDate
	boundary.EffectiveUntil = &edge // effective_until == date is still in effect

	rules := []models.RosterRule{wrongDay, notYet, lapsed, boundary}

	got, err := RosteredInstructorsFor(rules, rosterDate, "11:00", "12:00")
	if err != nil {
		t.Fatalf("RosteredInstructorsFor: %v", err)
	}
	for _, id := range []string{"ins-tuesday", "ins-future", "ins-lapsed"} {
		if _, ok := got[id]; ok {
			t.Errorf("%s should not be rostered", id)
		}
	}
	if _, ok := got["ins-boundary"]; !ok {
		t.Errorf("rule ending on the query date should still apply")
	}
}

func TestRosteredInstructorsForSkipsMalformedRule(t *testing.T) {
	bad := makeRule("ins-bad", 3, "25:00", "26:00")
	rules := []models.RosterRule{bad, makeRule("ins-ok", 3, "07:30", "22:00")}

	got, err := RosteredInstructorsFor(rules, rosterDate, "11:00", "12:00")
	if err != nil {
		t.Fatalf("a malformed stored rule must not fail the query: %v", err)
	}
	if _, ok := got["ins-bad"]; ok {
		t.Errorf("unparseable rule must not roster its instructor")
	}
	if _, ok := got["ins-ok"]; !ok {
		t.Errorf("healthy rule should still roster")
	}
}

func TestRosteredInstructorsForRejectsBadQueryWindow(t *testing.T) {
	rules := []models.RosterRule{makeRule("ins-1", 3, "07:30", "22:00")}

	if _, err := RosteredInstructorsFor(rules, rosterDate, "nope", "12:00"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("malformed query start: got %v, want ErrInvalidFormat", err)
	}
	if _, err := RosteredInstructorsFor(rules, rosterDate, "12:00", "11:00"); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("reversed query window: got %v, want ErrInvalidWindow", err)
	}
}

func TestInstructorAvailabilityMap(t *testing.T) {
	voided := makeRule("ins-1", 3, "13:00", "17:00")
	now := time.Now()
	voided.VoidedAt = &now

	rules := []models.RosterRule{
		makeRule("ins-1", 3, "07:30", "12:00"),
		voided,
		makeRule("ins-2", 3, "09:00", "17:00"),
	}

	m := InstructorAvailabilityMap(rules)
	if len(m["ins-1"]) != 1 {
		t.Fatalf("ins-1 windows = %d, want 1 (voided rule excluded)", len(m["ins-1"]))
	}
	w := m["ins-1"][0]
	if !w.ContainsInstant(450) { // 07:30, start inclusive
		t.Errorf("window should contain its start instant")
	}
	if w.ContainsInstant(720) { // 12:00, end exclusive
		t.Errorf("window must not contain its end instant")
	}
	if len(m["ins-2"]) != 1 {
		t.Errorf("ins-2 windows = %d, want 1", len(m["ins-2"]))
	}
}

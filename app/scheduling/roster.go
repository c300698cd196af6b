package scheduling

import (
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// RosteredInstructorsFor resolves which instructors are rostered on for the
// proposed window on date. A rule counts only if it is active, not voided,
// falls on the date's weekday, is in effect on the date, and its window
// fully contains [startHHMM, endHHMM] (end-inclusive, so a booking may end
// exactly at shift end).
//
// A rule whose stored times fail to parse is skipped rather than failing the
// whole query; malformed query times are the caller's error.
func RosteredInstructorsFor(rules []models.RosterRule, date time.Time, startHHMM, endHHMM string) (map[string]struct{}, error) {
	startMin, err := ParseTimeToMinutes(startHHMM)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseTimeToMinutes(endHHMM)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, ErrInvalidWindow
	}

	weekday := int(date.Weekday())
	rostered := make(map[string]struct{})
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.IsVoided() {
			continue
		}
		if rule.DayOfWeek != weekday {
			continue
		}
		if !rule.InEffectOn(date) {
			continue
		}
		window, err := ParseWindow(rule.StartTime, rule.EndTime)
		if err != nil {
			continue
		}
		if window.ContainsInterval(startMin, endMin) {
			rostered[rule.InstructorID] = struct{}{}
		}
	}
	return rostered, nil
}

// InstructorAvailabilityMap groups the usable windows of each instructor,
// for rendering a point-in-time scheduler grid via ContainsInstant. Voided,
// inactive and unparseable rules are excluded. The caller is expected to
// have pre-filtered rules to the relevant day and effective date.
func InstructorAvailabilityMap(rules []models.RosterRule) map[string][]Window {
	availability := make(map[string][]Window)
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.IsVoided() {
			continue
		}
		window, err := ParseWindow(rule.StartTime, rule.EndTime)
		if err != nil {
			continue
		}
		availability[rule.InstructorID] = append(availability[rule.InstructorID], window)
	}
	return availability
}

// Package scheduling holds the pure resource-scheduling logic: time-of-day
// windows, instructor roster resolution, booking conflict detection and the
// booking lifecycle. Nothing in this package touches the database.
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat is returned for a time string that is not HH:MM or
	// HH:MM:SS with hour 0-23 and minute 0-59.
	ErrInvalidFormat = errors.New("invalid time format")

	// ErrInvalidWindow is returned when a window's end is not after its
	// start. Overnight-wrapping windows are not modelled.
	ErrInvalidWindow = errors.New("invalid time window")
)

// ParseTimeToMinutes converts "HH:MM" or "HH:MM:SS" to minutes past
// midnight (0-1439). Seconds are accepted and ignored.
func ParseTimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return hour*60 + minute, nil
}

// Window is a time-of-day interval in minutes past midnight.
type Window struct {
	Start int
	End   int
}

// NewWindow builds a window from minute offsets. End must be strictly after
// start.
func NewWindow(start, end int) (Window, error) {
	if end <= start {
		return Window{}, fmt.Errorf("%w: end %d not after start %d", ErrInvalidWindow, end, start)
	}
	return Window{Start: start, End: end}, nil
}

// ParseWindow builds a window from two time-of-day strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseTimeToMinutes(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeToMinutes(end)
	if err != nil {
		return Window{}, err
	}
	return NewWindow(s, e)
}

// ContainsInstant reports whether a single minute-of-day falls inside the
// window. Start is inclusive, end exclusive, so the instant that starts the
// next window is never counted twice by a scheduler grid.
func (w Window) ContainsInstant(minute int) bool {
	return minute >= w.Start && minute < w.End
}

// ContainsInterval reports whether [start, end] is fully covered by the
// window. Both ends are inclusive here: a rule that ends exactly at a
// proposed booking's end time still covers it.
func (w Window) ContainsInterval(start, end int) bool {
	return start >= w.Start && end <= w.End
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}

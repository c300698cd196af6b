package scheduling

import (
	"errors"
	"fmt"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

// ErrUnknownStatus is returned when a status value outside the declared set
// reaches the lifecycle mapping. This is a data defect to surface, never to
// swallow as "no stage".
var ErrUnknownStatus = errors.New("unknown booking status")

// StageID identifies one of the five visible progress stages.
type StageID string

const (
	// StageNone is the stage of a cancelled booking: legitimately no
	// progress stage, as opposed to ErrUnknownStatus.
	StageNone     StageID = ""
	StageBriefing StageID = "briefing"
	StageCheckout StageID = "checkout"
	StageFlying   StageID = "flying"
	StageCheckin  StageID = "checkin"
	StageDebrief  StageID = "debrief"
)

// Stage pairs a stage id with its display label.
type Stage struct {
	ID    StageID `json:"id"`
	Label string  `json:"label"`
}

// Stages is the ordered list of visible progress stages. Cancellation is a
// terminal state, not a stage, and is deliberately absent.
var Stages = []Stage{
	{ID: StageBriefing, Label: "Briefing"},
	{ID: StageCheckout, Label: "Check-out"},
	{ID: StageFlying, Label: "Flying"},
	{ID: StageCheckin, Label: "Check-in"},
	{ID: StageDebrief, Label: "Debrief"},
}

// statusOrder is the non-branching operational chain. Cancellation is
// handled separately and may occur from any of these.
var statusOrder = []models.BookingStatus{
	models.BookingUnconfirmed,
	models.BookingConfirmed,
	models.BookingBriefing,
	models.BookingCheckout,
	models.BookingFlying,
	models.BookingCheckin,
	models.BookingComplete,
	models.BookingDebrief,
}

// StageForStatus maps a booking status to its visible stage. The mapping is
// total over the declared status set: every status yields a stage, cancelled
// yields StageNone with no error, and anything else is ErrUnknownStatus.
func StageForStatus(status models.BookingStatus) (StageID, error) {
	switch status {
	case models.BookingUnconfirmed, models.BookingConfirmed, models.BookingBriefing:
		return StageBriefing, nil
	case models.BookingCheckout:
		return StageCheckout, nil
	case models.BookingFlying:
		return StageFlying, nil
	case models.BookingCheckin:
		return StageCheckin, nil
	case models.BookingComplete, models.BookingDebrief:
		return StageDebrief, nil
	case models.BookingCancelled:
		return StageNone, nil
	}
	return StageNone, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

// StageState is one stage annotated for a progress indicator.
type StageState struct {
	Stage
	Completed bool `json:"completed"`
	Active    bool `json:"active"`
}

// StageProgress renders the progress-indicator view of a status: the active
// stage plus every earlier stage marked completed. A cancelled booking gets
// all stages inactive; an unknown status is an error.
func StageProgress(status models.BookingStatus) ([]StageState, error) {
	active, err := StageForStatus(status)
	if err != nil {
		return nil, err
	}
	activeIdx := -1
	for i, s := range Stages {
		if s.ID == active {
			activeIdx = i
		}
	}
	states := make([]StageState, len(Stages))
	for i, s := range Stages {
		states[i] = StageState{Stage: s}
		if activeIdx < 0 {
			continue
		}
		if i < activeIdx {
			states[i].Completed = true
		} else if i == activeIdx {
			states[i].Active = true
		}
	}
	return states, nil
}

// NextStatus returns the successor in the operational chain. The last status
// and cancelled have no successor.
func NextStatus(status models.BookingStatus) (models.BookingStatus, bool) {
	for i, s := range statusOrder {
		if s == status && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether a booking may move from one status to
// another: one step forward along the chain, or to cancelled from any
// non-cancelled status. Cancelled is absorbing.
func CanTransition(from, to models.BookingStatus) bool {
	if from == models.BookingCancelled {
		return false
	}
	if to == models.BookingCancelled {
		return true
	}
	next, ok := NextStatus(from)
	return ok && next == to
}

// ValidStatus reports whether a raw value belongs to the declared status
// set. Use at unmarshalling boundaries so bad rows fail loudly.
func ValidStatus(status models.BookingStatus) bool {
	if status == models.BookingCancelled {
		return true
	}
	for _, s := range statusOrder {
		if s == status {
			return true
		}
	}
	return false
}

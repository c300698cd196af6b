package scheduling

import (
	"errors"
	"testing"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

func TestStageForStatusIsTotalOverDeclaredSet(t *testing.T) {
	tests := []struct {
		status models.BookingStatus
		want   StageID
	}{
		{models.BookingUnconfirmed, StageBriefing},
		{models.BookingConfirmed, StageBriefing},
		{models.BookingBriefing, StageBriefing},
		{models.BookingCheckout, StageCheckout},
		{models.BookingFlying, StageFlying},
		{models.BookingCheckin, StageCheckin},
		{models.BookingComplete, StageDebrief},
		{models.BookingDebrief, StageDebrief},
		{models.BookingCancelled, StageNone},
	}
	for _, tt := range tests {
		got, err := StageForStatus(tt.status)
		if err != nil {
			t.Errorf("StageForStatus(%q): unexpected error %v", tt.status, err)
			continue
		}
		if got != tt.want {
			t.Errorf("StageForStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStageForStatusUnknownIsAnError(t *testing.T) {
	got, err := StageForStatus(models.BookingStatus("limbo"))
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("unknown status: got (%q, %v), want ErrUnknownStatus", got, err)
	}
}

func TestCancelledIsNotAStage(t *testing.T) {
	for _, s := range Stages {
		if s.ID == StageID(models.BookingCancelled) {
			t.Errorf("cancelled must not appear in the ordered stages")
		}
	}
}

func TestStageProgress(t *testing.T) {
	states, err := StageProgress(models.BookingFlying)
	if err != nil {
		t.Fatalf("StageProgress: %v", err)
	}
	if len(states) != len(Stages) {
		t.Fatalf("got %d states, want %d", len(states), len(Stages))
	}
	wantCompleted := map[StageID]bool{StageBriefing: true, StageCheckout: true}
	for _, st := range states {
		if st.Active != (st.ID == StageFlying) {
			t.Errorf("stage %q active = %v", st.ID, st.Active)
		}
		if st.Completed != wantCompleted[st.ID] {
			t.Errorf("stage %q completed = %v, want %v", st.ID, st.Completed, wantCompleted[st.ID])
		}
	}
}

func TestStageProgressCancelled(t *testing.T) {
	// A cancelled booking legitimately has no active stage; the caller can
	// tell it apart from a data defect because there is no error.
	states, err := StageProgress(models.BookingCancelled)
	if err != nil {
		t.Fatalf("StageProgress(cancelled): %v", err)
	}
	for _, st := range states {
		if st.Active || st.Completed {
			t.Errorf("cancelled booking must render no progress, stage %q = %+v", st.ID, st)
		}
	}

	if _, err := StageProgress(models.BookingStatus("limbo")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("unknown status must error, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.BookingUnconfirmed, models.BookingConfirmed, true},
		{models.BookingConfirmed, models.BookingBriefing, true},
		{models.BookingBriefing, models.BookingCheckout, true},
		{models.BookingCheckout, models.BookingFlying, true},
		{models.BookingFlying, models.BookingCheckin, true},
		{models.BookingCheckin, models.BookingComplete, true},
		{models.BookingComplete, models.BookingDebrief, true},

		// No skipping and no going backwards.
		{models.BookingUnconfirmed, models.BookingFlying, false},
		{models.BookingFlying, models.BookingConfirmed, false},
		{models.BookingDebrief, models.BookingUnconfirmed, false},

		// Cancellation from anywhere, but absorbing.
		{models.BookingUnconfirmed, models.BookingCancelled, true},
		{models.BookingFlying, models.BookingCancelled, true},
		{models.BookingDebrief, models.BookingCancelled, true},
		{models.BookingCancelled, models.BookingCancelled, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNextStatusChainEndsAtDebrief(t *testing.T) {
	status := models.BookingUnconfirmed
	steps := 0
	for {
		next, ok := NextStatus(status)
		if !ok {
			break
		}
		status = next
		steps++
		if steps > 10 {
			t.Fatalf("status chain does not terminate")
		}
	}
	if status != models.BookingDebrief {
		t.Errorf("chain ends at %q, want debrief", status)
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(models.BookingCancelled) {
		t.Errorf("cancelled is a declared status")
	}
	if ValidStatus(models.BookingStatus("limbo")) {
		t.Errorf("undeclared status must be invalid")
	}
}

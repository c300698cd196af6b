package scheduling

import (
	"errors"
	"testing"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "07:30", want: 450},
		{in: "23:59", want: 1439},
		{in: "09:15:30", want: 555},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "1230", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "12:30:xx", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q): expected error, got %d", tt.in, got)
			} else if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseTimeToMinutes(%q): error %v is not ErrInvalidFormat", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewWindowRejectsNonPositiveLength(t *testing.T) {
	if _, err := NewWindow(600, 600); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("zero-length window: got %v, want ErrInvalidWindow", err)
	}
	if _, err := NewWindow(600, 540); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("reversed window: got %v, want ErrInvalidWindow", err)
	}
	if _, err := NewWindow(540, 600); err != nil {
		t.Errorf("valid window: unexpected error %v", err)
	}
}

func TestContainsInstantEndExclusive(t *testing.T) {
	w, err := NewWindow(540, 600) // 09:00-10:00
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	tests := []struct {
		minute int
		want   bool
	}{
		{539, false},
		{540, true}, // start inclusive
		{599, true},
		{600, false}, // end exclusive: belongs to the next grid cell
		{601, false},
	}
	for _, tt := range tests {
		if got := w.ContainsInstant(tt.minute); got != tt.want {
			t.Errorf("ContainsInstant(%d) = %v, want %v", tt.minute, got, tt.want)
		}
	}
}

func TestContainsIntervalEndInclusive(t *testing.T) {
	w, err := ParseWindow("07:30", "22:00")
	if err != nil {
		t.Fatalf("ParseWindow: %v", err)
	}
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{name: "fully inside", start: 660, end: 720, want: true},               // 11:00-12:00
		{name: "ends exactly at window end", start: 1200, end: 1320, want: true}, // 20:00-22:00
		{name: "starts exactly at window start", start: 450, end: 480, want: true},
		{name: "starts before window", start: 420, end: 480, want: false},
		{name: "ends after window", start: 1260, end: 1321, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.ContainsInterval(tt.start, tt.end); got != tt.want {
				t.Errorf("ContainsInterval(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestTimerStateSameDisplay(t *testing.T) {
	base := TimerState{Minutes: 24, Seconds: 59, IsRunning: true, CustomMinutes: 25}

	tests := []struct {
		name  string
		other TimerState
		same  bool
	}{
		{"identical", TimerState{Minutes: 24, Seconds: 59, IsRunning: true, CustomMinutes: 25}, true},
		{"different timestamp only", TimerState{Minutes: 24, Seconds: 59, IsRunning: true, CustomMinutes: 25, LastUpdated: 12345}, true},
		{"different user only", TimerState{UserID: uuid.New(), Minutes: 24, Seconds: 59, IsRunning: true, CustomMinutes: 25}, true},
		{"different minutes", TimerState{Minutes: 23, Seconds: 59, IsRunning: true, CustomMinutes: 25}, false},
		{"different seconds", TimerState{Minutes: 24, Seconds: 58, IsRunning: true, CustomMinutes: 25}, false},
		{"different running flag", TimerState{Minutes: 24, Seconds: 59, IsRunning: false, CustomMinutes: 25}, false},
		{"different custom minutes", TimerState{Minutes: 24, Seconds: 59, IsRunning: true, CustomMinutes: 30}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.SameDisplay(tc.other); got != tc.same {
				t.Errorf("SameDisplay: expected %v, got %v", tc.same, got)
			}
		})
	}
}

func TestTimerStateRoundTrip(t *testing.T) {
	// The shared record is written and read back as JSON; a round trip must
	// preserve the display exactly.
	original := TimerState{
		UserID:        uuid.New(),
		Minutes:       12,
		Seconds:       34,
		IsRunning:     true,
		CustomMinutes: 45,
		LastUpdated:   1710000000000,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded TimerState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded != original {
		t.Errorf("Round trip changed the record: %+v != %+v", decoded, original)
	}
	if !decoded.SameDisplay(original) {
		t.Error("Round trip changed the display")
	}
}

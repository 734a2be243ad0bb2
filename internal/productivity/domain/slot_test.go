package productivity

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSlotOf(t *testing.T) {
	day := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		offset time.Duration
		want   string
	}{
		{offset: 0, want: "00:00"},
		{offset: 14*time.Minute + 59*time.Second, want: "00:00"},
		{offset: 15 * time.Minute, want: "00:15"},
		{offset: 8*time.Hour + 7*time.Minute, want: "08:00"},
		{offset: 8*time.Hour + 22*time.Minute, want: "08:15"},
		{offset: 23*time.Hour + 59*time.Minute, want: "23:45"},
	}
	for _, tc := range cases {
		if got := SlotOf(day.Add(tc.offset)).String(); got != tc.want {
			t.Fatalf("SlotOf(+%s): got=%s want=%s", tc.offset, got, tc.want)
		}
	}
}

func TestNewTimeSlotBounds(t *testing.T) {
	slot, err := NewTimeSlot(23, 3)
	if err != nil {
		t.Fatalf("new slot: %v", err)
	}
	if slot != SlotsPerDay-1 || slot.Hour() != 23 || slot.Quarter() != 3 {
		t.Fatalf("unexpected slot %d", slot)
	}
	if _, err := NewTimeSlot(24, 0); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot for hour 24, got %v", err)
	}
	if _, err := NewTimeSlot(0, 4); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot for quarter 4, got %v", err)
	}
}

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("13:45")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if slot.Hour() != 13 || slot.Quarter() != 3 {
		t.Fatalf("unexpected slot %s", slot)
	}
	for _, bad := range []string{"13:40", "24:00", "noon", ""} {
		if _, err := ParseTimeSlot(bad); !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("ParseTimeSlot(%q): expected ErrInvalidSlot, got %v", bad, err)
		}
	}
}

func TestAllSlotsChronological(t *testing.T) {
	slots := AllSlots()
	if len(slots) != 96 {
		t.Fatalf("expected 96 slots, got %d", len(slots))
	}
	if slots[0].String() != "00:00" || slots[95].String() != "23:45" {
		t.Fatalf("unexpected bounds %s..%s", slots[0], slots[95])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not ordered at %d", i)
		}
	}
}

func TestTimeSlotJSON(t *testing.T) {
	data, err := json.Marshal([]TimeSlot{32, 33})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["08:00","08:15"]` {
		t.Fatalf("unexpected json %s", data)
	}
}

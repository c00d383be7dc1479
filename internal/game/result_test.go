package game

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole second", time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local), "2026-03-14T09:30:00"},
		{"microseconds", time.Date(2026, 3, 14, 9, 30, 0, 123456000, time.Local), "2026-03-14T09:30:00.123456"},
		{"leading zeros", time.Date(2026, 3, 14, 9, 30, 5, 42000, time.Local), "2026-03-14T09:30:05.000042"},
		{"sub-microsecond truncated", time.Date(2026, 3, 14, 9, 30, 0, 999, time.Local), "2026-03-14T09:30:00"},
		{"truncated not rounded", time.Date(2026, 3, 14, 23, 59, 59, 999999999, time.Local), "2026-03-14T23:59:59.999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.in); got != tt.want {
				t.Errorf("FormatTimestamp = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmit_TimestampKeepsMicroseconds(t *testing.T) {
	s := NewStore(WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 500000000, time.Local)
	}))
	sub, err := s.Submit(0, 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.Result.Timestamp != "2026-03-14T09:30:00.500000" {
		t.Errorf("Timestamp %q", sub.Result.Timestamp)
	}
}

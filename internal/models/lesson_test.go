package models

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	hour := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	tests := []struct {
		name                       string
		startA, endA, startB, endB time.Time
		want                       bool
	}{
		{"identical", hour(0), hour(1), hour(0), hour(1), true},
		{"partial overlap", hour(0), hour(2), hour(1), hour(3), true},
		{"contained", hour(0), hour(4), hour(1), hour(2), true},
		{"back to back", hour(0), hour(1), hour(1), hour(2), false},
		{"disjoint", hour(0), hour(1), hour(2), hour(3), false},
		{"reverse back to back", hour(1), hour(2), hour(0), hour(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.startA, tt.endA, tt.startB, tt.endB); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

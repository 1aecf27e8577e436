package services

import (
	"testing"
	"time"
)

func TestStartOfDay_KeepsLocalDate(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	bogota := time.FixedZone("-05", -5*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "utc midnight unchanged",
			in:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "utc afternoon snaps back",
			in:   time.Date(2026, 6, 1, 15, 45, 0, 0, time.UTC),
			want: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "early morning ahead of utc keeps its date",
			in:   time.Date(2026, 6, 1, 0, 30, 0, 0, paris),
			want: time.Date(2026, 6, 1, 0, 0, 0, 0, paris),
		},
		{
			name: "late evening behind utc keeps its date",
			in:   time.Date(2026, 6, 1, 23, 30, 0, 0, bogota),
			want: time.Date(2026, 6, 1, 0, 0, 0, 0, bogota),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := startOfDay(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if got.Location() != tt.in.Location() {
				t.Errorf("Location changed from %v to %v", tt.in.Location(), got.Location())
			}
		})
	}
}

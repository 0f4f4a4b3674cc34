package model

import (
	"errors"
	"testing"
	"time"
)

func mustSlot(t *testing.T, start, end time.Time) TimeSlot {
	t.Helper()
	slot, err := NewTimeSlot(start, end, 4)
	if err != nil {
		t.Fatalf("unexpected error creating slot: %v", err)
	}
	return slot
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestNewTimeSlot(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid one hour", at(9, 0), at(10, 0), nil},
		{"valid exactly max duration", at(9, 0), at(13, 0), nil},
		{"end equals start", at(9, 0), at(9, 0), ErrInvalidTimeRange},
		{"end before start", at(10, 0), at(9, 0), ErrInvalidTimeRange},
		{"exceeds max duration", at(9, 0), at(13, 1), ErrExceedsMaxDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := NewTimeSlot(tt.start, tt.end, 4)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !slot.StartAt.Equal(tt.start) || !slot.EndAt.Equal(tt.end) {
					t.Errorf("slot does not carry the given instants: %+v", slot)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeSlot
		b    TimeSlot
		want bool
	}{
		{
			name: "touching slots do not overlap",
			a:    mustSlot(t, at(9, 0), at(10, 0)),
			b:    mustSlot(t, at(10, 0), at(11, 0)),
			want: false,
		},
		{
			name: "partial overlap",
			a:    mustSlot(t, at(9, 0), at(10, 30)),
			b:    mustSlot(t, at(10, 0), at(11, 0)),
			want: true,
		},
		{
			name: "contained slot",
			a:    mustSlot(t, at(9, 0), at(12, 0)),
			b:    mustSlot(t, at(10, 0), at(11, 0)),
			want: true,
		},
		{
			name: "identical slots",
			a:    mustSlot(t, at(9, 0), at(10, 0)),
			b:    mustSlot(t, at(9, 0), at(10, 0)),
			want: true,
		},
		{
			name: "disjoint slots",
			a:    mustSlot(t, at(9, 0), at(10, 0)),
			b:    mustSlot(t, at(14, 0), at(15, 0)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			// overlap must be symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

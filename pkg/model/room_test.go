package model

import (
	"errors"
	"testing"
)

func TestNewRoom(t *testing.T) {
	cases := []struct {
		name     string
		roomName string
		capacity int
		location string
		wantErr  error
	}{
		{"valid", "Board Room", 8, "Floor 2", nil},
		{"blank name", "   ", 8, "Floor 2", ErrBlankRoomName},
		{"zero capacity", "Board Room", 0, "Floor 2", ErrInvalidCapacity},
		{"negative capacity", "Board Room", -3, "Floor 2", ErrInvalidCapacity},
		{"blank location", "Board Room", 8, "\t", ErrBlankLocation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room, err := NewRoom(tc.roomName, tc.capacity, tc.location, true)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if room.Name != tc.roomName || room.Capacity != tc.capacity || room.Location != tc.location {
				t.Errorf("unexpected room: %+v", room)
			}
			if !room.IsActive {
				t.Errorf("expected room to be active")
			}
		})
	}
}

func TestRoomUpdate_ReplacesAllFields(t *testing.T) {
	room, err := NewRoom("Board Room", 8, "Floor 2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := room.Update("Focus Room", 4, "Floor 3", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if room.Name != "Focus Room" || room.Capacity != 4 || room.Location != "Floor 3" || room.IsActive {
		t.Errorf("unexpected room after update: %+v", room)
	}
	if room.UpdatedAt.IsZero() {
		t.Errorf("expected updated_at to be set")
	}
}

func TestRoomUpdate_RejectsInvalidInput(t *testing.T) {
	room, err := NewRoom("Board Room", 8, "Floor 2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := room.Update("", 4, "Floor 3", true); !errors.Is(err, ErrBlankRoomName) {
		t.Errorf("expected ErrBlankRoomName, got %v", err)
	}
	if room.Name != "Board Room" {
		t.Errorf("expected room untouched on invalid update, got %+v", room)
	}
}

func TestRoomUpdatePartial_OnlyProvidedFields(t *testing.T) {
	room, err := NewRoom("Board Room", 8, "Floor 2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	capacity := 12
	if err := room.UpdatePartial(&RoomUpdate{Capacity: &capacity}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if room.Capacity != 12 {
		t.Errorf("expected capacity 12, got %d", room.Capacity)
	}
	if room.Name != "Board Room" || room.Location != "Floor 2" || !room.IsActive {
		t.Errorf("expected other fields unchanged, got %+v", room)
	}
}

func TestRoomUpdatePartial_RejectsBlankName(t *testing.T) {
	room, err := NewRoom("Board Room", 8, "Floor 2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blank := "  "
	if err := room.UpdatePartial(&RoomUpdate{Name: &blank}); !errors.Is(err, ErrBlankRoomName) {
		t.Errorf("expected ErrBlankRoomName, got %v", err)
	}
}

func TestRoomActivateDeactivate(t *testing.T) {
	room, err := NewRoom("Board Room", 8, "Floor 2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room.Deactivate()
	if room.IsActive {
		t.Errorf("expected room inactive after Deactivate")
	}

	room.Activate()
	if !room.IsActive {
		t.Errorf("expected room active after Activate")
	}
}

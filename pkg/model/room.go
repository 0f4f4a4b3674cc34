package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrBlankRoomName   = errors.New("room name cannot be empty")
	ErrInvalidCapacity = errors.New("room capacity must be greater than 0")
	ErrBlankLocation   = errors.New("room location cannot be empty")
)

type Room struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,max=200"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"required,min=1"`
	Location  string    `json:"location" bson:"location" validate:"required,max=200"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// RoomUpdate carries a partial update; nil fields are left unchanged.
type RoomUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func NewRoom(name string, capacity int, location string, isActive bool) (*Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankRoomName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if strings.TrimSpace(location) == "" {
		return nil, ErrBlankLocation
	}

	return &Room{
		Name:     name,
		Capacity: capacity,
		Location: location,
		IsActive: isActive,
	}, nil
}

// Update replaces every mutable field, with the same validation as NewRoom.
func (r *Room) Update(name string, capacity int, location string, isActive bool) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankRoomName
	}
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if strings.TrimSpace(location) == "" {
		return ErrBlankLocation
	}

	r.Name = name
	r.Capacity = capacity
	r.Location = location
	r.IsActive = isActive
	r.touch()
	return nil
}

// UpdatePartial applies only the provided fields.
func (r *Room) UpdatePartial(u *RoomUpdate) error {
	if u.Name != nil {
		if strings.TrimSpace(*u.Name) == "" {
			return ErrBlankRoomName
		}
		r.Name = *u.Name
	}
	if u.Capacity != nil {
		if *u.Capacity <= 0 {
			return ErrInvalidCapacity
		}
		r.Capacity = *u.Capacity
	}
	if u.Location != nil {
		if strings.TrimSpace(*u.Location) == "" {
			return ErrBlankLocation
		}
		r.Location = *u.Location
	}
	if u.IsActive != nil {
		r.IsActive = *u.IsActive
	}

	r.touch()
	return nil
}

// Deactivate soft-disables the room. Existing bookings keep their status;
// only new submissions are rejected against an inactive room.
func (r *Room) Deactivate() {
	r.IsActive = false
	r.touch()
}

func (r *Room) Activate() {
	r.IsActive = true
	r.touch()
}

func (r *Room) touch() {
	r.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
}

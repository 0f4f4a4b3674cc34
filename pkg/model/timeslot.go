package model

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrExceedsMaxDuration = errors.New("time slot duration exceeds the allowed maximum")
)

// TimeSlot is an immutable half-open interval [StartAt, EndAt).
type TimeSlot struct {
	StartAt time.Time `json:"start_at" bson:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" bson:"end_at" validate:"required"`
}

func NewTimeSlot(startAt, endAt time.Time, maxHours int) (TimeSlot, error) {
	if !endAt.After(startAt) {
		return TimeSlot{}, ErrInvalidTimeRange
	}
	if endAt.Sub(startAt) > time.Duration(maxHours)*time.Hour {
		return TimeSlot{}, ErrExceedsMaxDuration
	}
	return TimeSlot{StartAt: startAt, EndAt: endAt}, nil
}

// Overlaps uses strict inequalities, so slots that merely touch at an
// endpoint do not overlap.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.StartAt.Before(other.EndAt) && t.EndAt.After(other.StartAt)
}

func (t TimeSlot) Duration() time.Duration {
	return t.EndAt.Sub(t.StartAt)
}

func (t TimeSlot) IsZero() bool {
	return t.StartAt.IsZero() && t.EndAt.IsZero()
}

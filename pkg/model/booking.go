package model

import (
	"errors"
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusDraft     BookingStatus = "draft"
	StatusSubmitted BookingStatus = "submitted"
	StatusConfirmed BookingStatus = "confirmed"
	StatusDeclined  BookingStatus = "declined"
	StatusCancelled BookingStatus = "cancelled"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRoomNotActive     = errors.New("room is not active")
	ErrNoParticipants    = errors.New("at least one participant is required")
	ErrBlankDescription  = errors.New("description is required")
	ErrBlankReason       = errors.New("reason is required")
	ErrMissingRoom       = errors.New("room is required")
	ErrMissingTimeSlot   = errors.New("time slot is required")
)

// StatusTransition is an immutable audit record appended on every status
// change. Records are never edited or removed.
type StatusTransition struct {
	FromStatus BookingStatus `json:"from_status" bson:"from_status"`
	ToStatus   BookingStatus `json:"to_status" bson:"to_status"`
	ActorID    string        `json:"actor_id" bson:"actor_id"`
	Reason     string        `json:"reason,omitempty" bson:"reason,omitempty"`
	OccurredAt time.Time     `json:"occurred_at" bson:"occurred_at"`
}

// BookingRequest is the aggregate root of the booking lifecycle. All status
// changes go through Submit/Confirm/Decline/Cancel; each appends exactly one
// transition record and returns it so the caller can route the emitted fact.
type BookingRequest struct {
	ID                string             `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID            string             `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	TimeSlot          TimeSlot           `json:"time_slot" bson:"time_slot" validate:"required"`
	ParticipantEmails []string           `json:"participant_emails" bson:"participant_emails" validate:"required,min=1,email_list"`
	Description       string             `json:"description" bson:"description" validate:"required,max=1000"`
	Status            BookingStatus      `json:"status" bson:"status" validate:"required,oneof=draft submitted confirmed declined cancelled"`
	CreatedBy         string             `json:"created_by" bson:"created_by" validate:"required"`
	Transitions       []StatusTransition `json:"transitions" bson:"transitions"`
	Version           int64              `json:"version" bson:"version"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func NewBookingRequest(room *Room, slot TimeSlot, participantEmails []string, description string, createdBy string) (*BookingRequest, error) {
	if room == nil {
		return nil, ErrMissingRoom
	}
	if slot.IsZero() {
		return nil, ErrMissingTimeSlot
	}
	if len(participantEmails) == 0 {
		return nil, ErrNoParticipants
	}
	if isBlank(description) {
		return nil, ErrBlankDescription
	}

	return &BookingRequest{
		RoomID:            room.ID,
		TimeSlot:          slot,
		ParticipantEmails: participantEmails,
		Description:       description,
		Status:            StatusDraft,
		CreatedBy:         createdBy,
	}, nil
}

// Submit moves a draft to submitted. The room must be active. The conflict
// check against other bookings is the caller's responsibility and must run
// in the same transaction as the write that follows.
func (b *BookingRequest) Submit(room *Room, actorID string) (*StatusTransition, error) {
	if b.Status != StatusDraft {
		return nil, fmt.Errorf("%w: cannot submit booking in %s status", ErrInvalidTransition, b.Status)
	}
	if room == nil || !room.IsActive {
		return nil, ErrRoomNotActive
	}
	if len(b.ParticipantEmails) == 0 {
		return nil, ErrNoParticipants
	}
	if isBlank(b.Description) {
		return nil, ErrBlankDescription
	}

	return b.applyTransition(StatusSubmitted, actorID, "Booking request submitted for review"), nil
}

func (b *BookingRequest) Confirm(actorID string) (*StatusTransition, error) {
	if b.Status != StatusSubmitted {
		return nil, fmt.Errorf("%w: cannot confirm booking in %s status", ErrInvalidTransition, b.Status)
	}

	return b.applyTransition(StatusConfirmed, actorID, "Booking request confirmed"), nil
}

func (b *BookingRequest) Decline(actorID, reason string) (*StatusTransition, error) {
	if b.Status != StatusSubmitted {
		return nil, fmt.Errorf("%w: cannot decline booking in %s status", ErrInvalidTransition, b.Status)
	}
	if isBlank(reason) {
		return nil, ErrBlankReason
	}

	return b.applyTransition(StatusDeclined, actorID, reason), nil
}

func (b *BookingRequest) Cancel(actorID, reason string) (*StatusTransition, error) {
	if b.Status != StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot cancel booking in %s status", ErrInvalidTransition, b.Status)
	}
	if isBlank(reason) {
		return nil, ErrBlankReason
	}

	return b.applyTransition(StatusCancelled, actorID, reason), nil
}

// CanTransitionTo exposes the transition table as a pure predicate, without
// extra preconditions such as room activity or conflicts.
func (b *BookingRequest) CanTransitionTo(target BookingStatus) bool {
	switch b.Status {
	case StatusDraft:
		return target == StatusSubmitted
	case StatusSubmitted:
		return target == StatusConfirmed || target == StatusDeclined
	case StatusConfirmed:
		return target == StatusCancelled
	default:
		// declined and cancelled are terminal
		return false
	}
}

func (b *BookingRequest) CanBeSubmitted(room *Room) bool {
	return b.Status == StatusDraft &&
		room != nil && room.IsActive &&
		len(b.ParticipantEmails) > 0 &&
		!isBlank(b.Description)
}

func (b *BookingRequest) applyTransition(to BookingStatus, actorID, reason string) *StatusTransition {
	transition := StatusTransition{
		FromStatus: b.Status,
		ToStatus:   to,
		ActorID:    actorID,
		Reason:     reason,
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	b.Status = to
	b.UpdatedAt = transition.OccurredAt
	b.Transitions = append(b.Transitions, transition)

	return &transition
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

package service

import (
	"context"

	"roomly/internal/bookings/repository"
	"roomly/pkg/config"
	"roomly/pkg/model"
)

// ConflictChecker decides which statuses block a time slot and pushes the
// overlap scan down to the repository. Confirmed bookings always block;
// submitted ones block only when CheckSubmittedForConflicts is on.
type ConflictChecker struct {
	repo repository.BookingRepository
	cfg  *config.Config
}

func NewConflictChecker(repo repository.BookingRepository, cfg *config.Config) *ConflictChecker {
	return &ConflictChecker{
		repo: repo,
		cfg:  cfg,
	}
}

func (c *ConflictChecker) blockingStatuses() []model.BookingStatus {
	statuses := []model.BookingStatus{model.StatusConfirmed}
	if c.cfg.CheckSubmittedForConflicts {
		statuses = append(statuses, model.StatusSubmitted)
	}
	return statuses
}

// HasConflict reports whether any blocking booking overlaps the slot.
// excludeID keeps the booking under transition from colliding with itself.
func (c *ConflictChecker) HasConflict(ctx context.Context, roomID string, excludeID string, slot model.TimeSlot) (bool, error) {
	count, err := c.repo.CountOverlapping(ctx, roomID, excludeID, c.blockingStatuses(), slot)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

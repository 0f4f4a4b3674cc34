package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	"roomly/internal/events"
	roomserrors "roomly/internal/rooms/errors"
	roomsrepo "roomly/internal/rooms/repository"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBookingInput is the payload for drafting a new booking request.
type CreateBookingInput struct {
	RoomID            string    `json:"room_id"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	ParticipantEmails []string  `json:"participant_emails"`
	Description       string    `json:"description"`
}

// TransitionInput carries the optimistic concurrency token and, for decline
// and cancel, the caller's reason. Version 0 means "no token provided", in
// which case only the in-transaction compare-and-swap guards the write.
type TransitionInput struct {
	Version int64  `json:"version"`
	Reason  string `json:"reason"`
}

type BookingService interface {
	Create(ctx context.Context, actor httputil.Identity, input *CreateBookingInput) (*model.BookingRequest, error)
	GetByID(ctx context.Context, actor httputil.Identity, id string) (*model.BookingRequest, error)
	GetAll(ctx context.Context, actor httputil.Identity, filter repository.ListFilter, limit int, offset int64) ([]*model.BookingRequest, int64, error)
	Submit(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error)
	Confirm(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error)
	Decline(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error)
	Cancel(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	roomRepo  roomsrepo.RoomRepository
	checker   *ConflictChecker
	validator *validator.BookingValidator
	publisher events.TransitionPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	roomRepo roomsrepo.RoomRepository,
	checker *ConflictChecker,
	validator *validator.BookingValidator,
	publisher events.TransitionPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		checker:   checker,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, actor httputil.Identity, input *CreateBookingInput) (*model.BookingRequest, error) {
	if input.RoomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	slot, err := model.NewTimeSlot(input.StartAt, input.EndAt, s.cfg.MaxTimeSlotHours)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	room, err := s.loadRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	emails := sanitizer.NormalizeEmails(input.ParticipantEmails)
	description := sanitizer.NormalizeDescription(input.Description)

	booking, err := model.NewBookingRequest(room, slot, emails, description, actor.UserID)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	booking.Version = 1

	if err := s.validate(booking); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking request", "error", err)
		return nil, apperrors.Internal("Failed to create booking request", err)
	}

	s.cfg.Log.Info("Booking request drafted",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"start_at", booking.TimeSlot.StartAt,
		"created_by", booking.CreatedBy,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, actor httputil.Identity, id string) (*model.BookingRequest, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && booking.CreatedBy != actor.UserID {
		return nil, apperrors.Forbidden("Booking requests are only visible to their creator")
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, actor httputil.Identity, filter repository.ListFilter, limit int, offset int64) ([]*model.BookingRequest, int64, error) {
	if !actor.IsAdmin() {
		// Employees only see their own requests regardless of the filter.
		filter.CreatedBy = actor.UserID
	}

	var count int64
	var bookings []*model.BookingRequest
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count booking requests", "error", errCount)
			errCount = apperrors.Internal("Failed to count booking requests", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list booking requests", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve booking requests", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Submit(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error) {
	return s.transition(ctx, id, input.Version, transitionSpec{
		name:      "submit",
		gating:    true,
		authorize: creatorOnly(actor, "Only the creator can submit a booking request"),
		needsRoom: true,
		apply: func(b *model.BookingRequest, room *model.Room) (*model.StatusTransition, error) {
			return b.Submit(room, actor.UserID)
		},
	})
}

func (s *bookingService) Confirm(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error) {
	return s.transition(ctx, id, input.Version, transitionSpec{
		name:      "confirm",
		gating:    true,
		authorize: adminOnly(actor, "Only an admin can confirm a booking request"),
		apply: func(b *model.BookingRequest, _ *model.Room) (*model.StatusTransition, error) {
			return b.Confirm(actor.UserID)
		},
	})
}

func (s *bookingService) Decline(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error) {
	return s.transition(ctx, id, input.Version, transitionSpec{
		name:      "decline",
		authorize: adminOnly(actor, "Only an admin can decline a booking request"),
		apply: func(b *model.BookingRequest, _ *model.Room) (*model.StatusTransition, error) {
			return b.Decline(actor.UserID, input.Reason)
		},
	})
}

func (s *bookingService) Cancel(ctx context.Context, actor httputil.Identity, id string, input *TransitionInput) (*model.BookingRequest, *events.TransitionFact, error) {
	return s.transition(ctx, id, input.Version, transitionSpec{
		name:      "cancel",
		authorize: creatorOnly(actor, "Only the creator can cancel a booking request"),
		apply: func(b *model.BookingRequest, _ *model.Room) (*model.StatusTransition, error) {
			return b.Cancel(actor.UserID, input.Reason)
		},
	})
}

// --- Transition machinery ---

type transitionSpec struct {
	name      string
	gating    bool // gating transitions run the conflict check before writing
	needsRoom bool // load the room and hand it to apply
	authorize func(b *model.BookingRequest) error
	apply     func(b *model.BookingRequest, room *model.Room) (*model.StatusTransition, error)
}

// transition is the reload-then-check-then-write core. The booking is
// reloaded inside the transaction so all checks run against current state,
// and the final write is a compare-and-swap on the reloaded version. Gating
// transitions additionally take a per-room advisory lock before the
// transaction starts, so concurrent gating writers for the same room run
// one at a time and each conflict check sees the previous commit.
func (s *bookingService) transition(ctx context.Context, id string, clientVersion int64, spec transitionSpec) (*model.BookingRequest, *events.TransitionFact, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := spec.authorize(booking); err != nil {
		return nil, nil, err
	}

	if spec.gating {
		lockID, err := s.acquireSlotLock(ctx, booking.RoomID)
		if err != nil {
			return nil, nil, err
		}
		defer func() {
			if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
				s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
			}
		}()
	}

	var transition *model.StatusTransition
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.load(sessCtx, id)
		if err != nil {
			return err
		}
		if clientVersion != 0 && clientVersion != current.Version {
			return apperrors.ConcurrencyConflict("Booking request was modified by another request")
		}

		var room *model.Room
		if spec.needsRoom {
			room, err = s.loadRoom(sessCtx, current.RoomID)
			if err != nil {
				return err
			}
		}

		if spec.gating {
			conflicting, err := s.checker.HasConflict(sessCtx, current.RoomID, current.ID, current.TimeSlot)
			if err != nil {
				return apperrors.Internal("Failed to check for conflicting bookings", err)
			}
			if conflicting {
				return apperrors.Conflict(fmt.Sprintf(
					"Room is already booked between %s and %s",
					current.TimeSlot.StartAt.Format(time.RFC3339),
					current.TimeSlot.EndAt.Format(time.RFC3339),
				))
			}
		}

		transition, err = spec.apply(current, room)
		if err != nil {
			return translateModelError(err)
		}

		if err := s.repo.UpdateVersioned(sessCtx, current, current.Version); err != nil {
			if errors.Is(err, bookingserrors.ErrVersionConflict) {
				return apperrors.ConcurrencyConflict("Booking request was modified by another request")
			}
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking request", id)
			}
			return apperrors.Internal("Failed to update booking request", err)
		}

		booking = current
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Booking transition rejected", "id", id, "transition", spec.name, "error", err)
		return nil, nil, err
	}

	fact := s.emit(ctx, booking, transition)

	s.cfg.Log.Info("Booking transition committed",
		"id", booking.ID,
		"transition", spec.name,
		"from_status", transition.FromStatus,
		"to_status", transition.ToStatus,
		"version", booking.Version,
	)
	return booking, fact, nil
}

// emit publishes the transition fact after the commit. Publish failures are
// logged and swallowed; the state change already happened.
func (s *bookingService) emit(ctx context.Context, booking *model.BookingRequest, transition *model.StatusTransition) *events.TransitionFact {
	fact := &events.TransitionFact{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		FromStatus: transition.FromStatus,
		ToStatus:   transition.ToStatus,
		ActorID:    transition.ActorID,
		Reason:     transition.Reason,
		OccurredAt: transition.OccurredAt,
	}

	if err := s.publisher.PublishTransition(ctx, *fact); err != nil {
		s.cfg.Log.Warn("Failed to publish transition event",
			"booking_id", fact.BookingID,
			"to_status", fact.ToStatus,
			"error", err,
		)
	}
	return fact
}

// --- Helpers ---

func (s *bookingService) load(ctx context.Context, id string) (*model.BookingRequest, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking request ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking request", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking request ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking request", err)
	}

	return booking, nil
}

func (s *bookingService) loadRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *bookingService) validate(booking *model.BookingRequest) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return apperrors.Validation("Booking request validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func translateModelError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidTransition):
		return apperrors.InvalidState(err.Error())
	case errors.Is(err, model.ErrRoomNotActive):
		return apperrors.RoomInactive("Cannot submit a booking request for an inactive room")
	case errors.Is(err, model.ErrBlankReason),
		errors.Is(err, model.ErrNoParticipants),
		errors.Is(err, model.ErrBlankDescription):
		return apperrors.InvalidInput(err.Error())
	default:
		return apperrors.Internal("Booking transition failed", err)
	}
}

func creatorOnly(actor httputil.Identity, message string) func(b *model.BookingRequest) error {
	return func(b *model.BookingRequest) error {
		if b.CreatedBy != actor.UserID {
			return apperrors.Forbidden(message)
		}
		return nil
	}
}

func adminOnly(actor httputil.Identity, message string) func(b *model.BookingRequest) error {
	return func(b *model.BookingRequest) error {
		if !actor.IsAdmin() {
			return apperrors.Forbidden(message)
		}
		return nil
	}
}

// acquireSlotLock creates an advisory lock scoped to the room. Keying per
// room rather than per slot instant is what serializes gating transitions on
// overlapping-but-distinct slots: snapshot isolation cannot detect that write
// skew (the two writes touch different documents), so the second transition
// must wait out the first and re-run its conflict check against the commit.
func (s *bookingService) acquireSlotLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s", roomID)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being processed by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

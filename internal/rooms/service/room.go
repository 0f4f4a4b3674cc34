package service

import (
	"context"
	"errors"
	"sync"
	"time"

	roomserrors "roomly/internal/rooms/errors"
	"roomly/internal/rooms/repository"
	"roomly/internal/rooms/validator"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
)

type RoomService interface {
	Create(ctx context.Context, actor httputil.Identity, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, actor httputil.Identity, id string, room *model.Room) (*model.Room, error)
	UpdatePartial(ctx context.Context, actor httputil.Identity, id string, updates *model.RoomUpdate) (*model.Room, error)
	Activate(ctx context.Context, actor httputil.Identity, id string) (*model.Room, error)
	Deactivate(ctx context.Context, actor httputil.Identity, id string) (*model.Room, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(repo repository.RoomRepository, validator *validator.RoomValidator, cfg *config.Config) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, actor httputil.Identity, room *model.Room) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	s.sanitize(room)
	created, err := model.NewRoom(room.Name, room.Capacity, room.Location, room.IsActive)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}
	created.CreatedAt = nowUTC()
	created.UpdatedAt = created.CreatedAt

	if err := s.validate(created); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, created); err != nil {
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}
	*room = *created

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID,
		"name", room.Name,
		"capacity", room.Capacity,
	)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, activeOnly)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, activeOnly, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, actor httputil.Identity, id string, room *model.Room) (*model.Room, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	s.sanitize(room)
	if err := existing.Update(room.Name, room.Capacity, room.Location, room.IsActive); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if err := s.validate(existing); err != nil {
		return nil, err
	}

	return s.persist(ctx, id, existing, "Room updated successfully")
}

func (s *roomService) UpdatePartial(ctx context.Context, actor httputil.Identity, id string, updates *model.RoomUpdate) (*model.Room, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	s.sanitizeUpdate(updates)
	if err := existing.UpdatePartial(updates); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if err := s.validate(existing); err != nil {
		return nil, err
	}

	return s.persist(ctx, id, existing, "Room updated successfully")
}

func (s *roomService) Activate(ctx context.Context, actor httputil.Identity, id string) (*model.Room, error) {
	return s.setActive(ctx, actor, id, true)
}

func (s *roomService) Deactivate(ctx context.Context, actor httputil.Identity, id string) (*model.Room, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *roomService) setActive(ctx context.Context, actor httputil.Identity, id string, active bool) (*model.Room, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	if active {
		existing.Activate()
	} else {
		existing.Deactivate()
	}

	message := "Room deactivated"
	if active {
		message = "Room activated"
	}
	return s.persist(ctx, id, existing, message)
}

// --- Helpers ---

func (s *roomService) persist(ctx context.Context, id string, room *model.Room, message string) (*model.Room, error) {
	if _, err := s.repo.Update(ctx, id, room); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info(message, "id", id, "is_active", room.IsActive)
	return room, nil
}

func (s *roomService) sanitize(room *model.Room) {
	room.Name = sanitizer.NormalizeName(room.Name)
	room.Location = sanitizer.NormalizeLocation(room.Location)
}

func (s *roomService) sanitizeUpdate(updates *model.RoomUpdate) {
	if updates.Name != nil {
		name := sanitizer.NormalizeName(*updates.Name)
		updates.Name = &name
	}
	if updates.Location != nil {
		location := sanitizer.NormalizeLocation(*updates.Location)
		updates.Location = &location
	}
}

func (s *roomService) validate(room *model.Room) error {
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func requireAdmin(actor httputil.Identity) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("Room management requires the admin role")
	}
	return nil
}

func translateLookupError(err error, id string) error {
	if errors.Is(err, roomserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Room", id)
	}
	if errors.Is(err, roomserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid room ID format")
	}
	return apperrors.Internal("Failed to retrieve room", err)
}

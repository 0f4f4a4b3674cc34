package service

import (
	"context"
	"testing"
	"time"

	roomserrors "roomly/internal/rooms/errors"
	"roomly/internal/rooms/validator"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockRoomRepository struct {
	createFunc   func(ctx context.Context, room *model.Room) error
	findByIDFunc func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc  func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error)
	countFunc    func(ctx context.Context, activeOnly bool) (int64, error)
	updateFunc   func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error)
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = "65f1a0b2c3d4e5f6a7b8c9d0"
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, roomserrors.ErrNotFound
}

func (m *mockRoomRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, activeOnly, limit, offset)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, activeOnly)
	}
	return 0, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, room)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockRoomRepository) RoomService {
	cfg := testConfig()
	return NewRoomService(repo, validator.NewRoomValidator(cfg.Log), cfg)
}

var (
	admin    = httputil.Identity{UserID: "admin-1", Role: httputil.RoleAdmin}
	employee = httputil.Identity{UserID: "emp-1", Role: httputil.RoleEmployee}
)

func storedRoom() *model.Room {
	return &model.Room{
		ID:       "65f1a0b2c3d4e5f6a7b8c9d0",
		Name:     "Board Room",
		Capacity: 12,
		Location: "Floor 3",
		IsActive: true,
	}
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	room := &model.Room{Name: "Huddle", Capacity: 4, Location: "Floor 1", IsActive: true}
	err := svc.Create(context.Background(), employee, room)
	if !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestCreate_SanitizesAndPersists(t *testing.T) {
	var persisted *model.Room
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.Room) error {
			persisted = room
			room.ID = "65f1a0b2c3d4e5f6a7b8c9d0"
			return nil
		},
	}
	svc := newTestService(repo)

	room := &model.Room{Name: "  Board   Room  ", Capacity: 12, Location: " Floor 3 ", IsActive: true}
	if err := svc.Create(context.Background(), admin, room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if persisted == nil {
		t.Fatal("expected repository Create to be called")
	}
	if persisted.Name != "Board Room" {
		t.Errorf("expected sanitized name %q, got %q", "Board Room", persisted.Name)
	}
	if persisted.Location != "Floor 3" {
		t.Errorf("expected sanitized location %q, got %q", "Floor 3", persisted.Location)
	}
	if room.ID == "" {
		t.Error("expected generated ID to be propagated to the caller")
	}
	if persisted.CreatedAt.IsZero() || persisted.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set on create")
	}
}

func TestCreate_RejectsInvalidRoom(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	cases := []struct {
		name string
		room *model.Room
	}{
		{"blank name", &model.Room{Name: "   ", Capacity: 4, Location: "Floor 1"}},
		{"zero capacity", &model.Room{Name: "Huddle", Capacity: 0, Location: "Floor 1"}},
		{"blank location", &model.Room{Name: "Huddle", Capacity: 4, Location: " "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(context.Background(), admin, tc.room)
			if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	_, err := svc.GetByID(context.Background(), "65f1a0b2c3d4e5f6a7b8c9d0")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetByID_InvalidIDFormat(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return nil, roomserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "not-an-object-id")
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestGetAll_ReturnsRoomsAndCount(t *testing.T) {
	repo := &mockRoomRepository{
		countFunc: func(ctx context.Context, activeOnly bool) (int64, error) {
			return 2, nil
		},
		findAllFunc: func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error) {
			return []*model.Room{storedRoom(), storedRoom()}, nil
		},
	}
	svc := newTestService(repo)

	rooms, count, err := svc.GetAll(context.Background(), false, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(rooms) != 2 {
		t.Errorf("expected 2 rooms with count 2, got %d rooms with count %d", len(rooms), count)
	}
}

func TestUpdate_FullReplace(t *testing.T) {
	var persisted *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return storedRoom(), nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
			persisted = room
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	updated, err := svc.Update(context.Background(), admin, "65f1a0b2c3d4e5f6a7b8c9d0", &model.Room{
		Name:     "War Room",
		Capacity: 6,
		Location: "Floor 2",
		IsActive: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if persisted.Name != "War Room" || persisted.Capacity != 6 || persisted.Location != "Floor 2" {
		t.Errorf("full update not applied: %+v", persisted)
	}
	if persisted.IsActive {
		t.Error("expected is_active false after full update")
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be refreshed")
	}
}

func TestUpdatePartial_OnlyProvidedFields(t *testing.T) {
	var persisted *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return storedRoom(), nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
			persisted = room
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	capacity := 20
	_, err := svc.UpdatePartial(context.Background(), admin, "65f1a0b2c3d4e5f6a7b8c9d0", &model.RoomUpdate{
		Capacity: &capacity,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if persisted.Capacity != 20 {
		t.Errorf("expected capacity 20, got %d", persisted.Capacity)
	}
	if persisted.Name != "Board Room" || persisted.Location != "Floor 3" {
		t.Errorf("untouched fields changed: %+v", persisted)
	}
}

func TestUpdatePartial_RejectsBlankName(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return storedRoom(), nil
		},
	}
	svc := newTestService(repo)

	blank := "   "
	_, err := svc.UpdatePartial(context.Background(), admin, "65f1a0b2c3d4e5f6a7b8c9d0", &model.RoomUpdate{
		Name: &blank,
	})
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestDeactivate_FlipsFlag(t *testing.T) {
	var persisted *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return storedRoom(), nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
			persisted = room
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	room, err := svc.Deactivate(context.Background(), admin, "65f1a0b2c3d4e5f6a7b8c9d0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room.IsActive || persisted.IsActive {
		t.Error("expected room to be inactive after Deactivate")
	}

	repo.findByIDFunc = func(ctx context.Context, id string) (*model.Room, error) {
		return persisted, nil
	}
	room, err = svc.Activate(context.Background(), admin, "65f1a0b2c3d4e5f6a7b8c9d0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !room.IsActive {
		t.Error("expected room to be active after Activate")
	}
}

func TestMutations_RequireAdmin(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return storedRoom(), nil
		},
	}
	svc := newTestService(repo)
	ctx := context.Background()
	id := "65f1a0b2c3d4e5f6a7b8c9d0"

	if _, err := svc.Update(ctx, employee, id, storedRoom()); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Errorf("Update: expected FORBIDDEN, got %v", err)
	}
	if _, err := svc.UpdatePartial(ctx, employee, id, &model.RoomUpdate{}); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Errorf("UpdatePartial: expected FORBIDDEN, got %v", err)
	}
	if _, err := svc.Deactivate(ctx, employee, id); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Errorf("Deactivate: expected FORBIDDEN, got %v", err)
	}
	if _, err := svc.Activate(ctx, employee, id); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Errorf("Activate: expected FORBIDDEN, got %v", err)
	}
}

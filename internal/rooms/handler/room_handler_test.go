package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockRoomService struct {
	createFunc func(ctx context.Context, actor httputil.Identity, room *model.Room) error
	getAllFunc func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error)
}

func (m *mockRoomService) Create(ctx context.Context, actor httputil.Identity, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, actor, room)
	}
	return nil
}

func (m *mockRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	return nil, apperrors.NotFoundWithID("Room", id)
}

func (m *mockRoomService) GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, activeOnly, limit, offset)
	}
	return []*model.Room{}, 0, nil
}

func (m *mockRoomService) Update(ctx context.Context, actor httputil.Identity, id string, room *model.Room) (*model.Room, error) {
	return room, nil
}

func (m *mockRoomService) UpdatePartial(ctx context.Context, actor httputil.Identity, id string, updates *model.RoomUpdate) (*model.Room, error) {
	return &model.Room{}, nil
}

func (m *mockRoomService) Activate(ctx context.Context, actor httputil.Identity, id string) (*model.Room, error) {
	return &model.Room{IsActive: true}, nil
}

func (m *mockRoomService) Deactivate(ctx context.Context, actor httputil.Identity, id string) (*model.Room, error) {
	return &model.Room{IsActive: false}, nil
}

func testHandler(svc *mockRoomService) *RoomHandler {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewRoomHandler(svc, log)
}

func TestCreate_MissingIdentity(t *testing.T) {
	h := testHandler(&mockRoomService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without X-User-Id, got %d", w.Code)
	}
}

func TestCreate_AdminForbiddenPropagates(t *testing.T) {
	svc := &mockRoomService{
		createFunc: func(ctx context.Context, actor httputil.Identity, room *model.Room) error {
			return apperrors.Forbidden("Room management requires the admin role")
		},
	}
	h := testHandler(svc)

	body := `{"name":"Board Room","capacity":8,"location":"Floor 2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(body))
	req.Header.Set(httputil.HeaderUserID, "emp-1")
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", w.Code)
	}
}

func TestCreate_Admin(t *testing.T) {
	var gotActor httputil.Identity
	svc := &mockRoomService{
		createFunc: func(ctx context.Context, actor httputil.Identity, room *model.Room) error {
			gotActor = actor
			room.ID = "65f1a0b2c3d4e5f6a7b8c9d0"
			return nil
		},
	}
	h := testHandler(svc)

	body := `{"name":"Board Room","capacity":8,"location":"Floor 2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(body))
	req.Header.Set(httputil.HeaderUserID, "adm-1")
	req.Header.Set(httputil.HeaderUserRole, httputil.RoleAdmin)
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if !gotActor.IsAdmin() {
		t.Errorf("expected admin actor, got %+v", gotActor)
	}

	var resp struct {
		Data model.Room `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != "65f1a0b2c3d4e5f6a7b8c9d0" {
		t.Errorf("expected id assigned by service in response, got %q", resp.Data.ID)
	}
}

func TestGetAll_QueryParams(t *testing.T) {
	cases := []struct {
		name           string
		query          string
		wantStatus     int
		wantActiveOnly bool
		wantLimit      int
		wantOffset     int64
	}{
		{"defaults", "", http.StatusOK, false, 10, 0},
		{"active filter", "?active=true", http.StatusOK, true, 10, 0},
		{"explicit paging", "?limit=10&offset=20", http.StatusOK, false, 10, 20},
		{"bad limit", "?limit=abc", http.StatusBadRequest, false, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotActiveOnly bool
			var gotLimit int
			var gotOffset int64
			svc := &mockRoomService{
				getAllFunc: func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error) {
					gotActiveOnly = activeOnly
					gotLimit = limit
					gotOffset = offset
					return []*model.Room{{Name: "Board Room"}}, 1, nil
				},
			}
			h := testHandler(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms"+tc.query, nil)
			w := httptest.NewRecorder()

			h.GetAll(w, req, httprouter.Params{})

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			if gotActiveOnly != tc.wantActiveOnly {
				t.Errorf("expected activeOnly=%v, got %v", tc.wantActiveOnly, gotActiveOnly)
			}
			if gotLimit != tc.wantLimit || gotOffset != tc.wantOffset {
				t.Errorf("expected limit=%d offset=%d, got limit=%d offset=%d", tc.wantLimit, tc.wantOffset, gotLimit, gotOffset)
			}

			var resp httputil.PaginatedResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.TotalCount != 1 {
				t.Errorf("expected total_count 1, got %d", resp.TotalCount)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	h := testHandler(&mockRoomService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/65f1a0b2c3d4e5f6a7b8c9d0", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req, httprouter.Params{{Key: "id", Value: "65f1a0b2c3d4e5f6a7b8c9d0"}})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdatePartial_InvalidBody(t *testing.T) {
	h := testHandler(&mockRoomService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/rooms/id/x", strings.NewReader(`not json`))
	req.Header.Set(httputil.HeaderUserID, "adm-1")
	req.Header.Set(httputil.HeaderUserRole, httputil.RoleAdmin)
	w := httptest.NewRecorder()

	h.UpdatePartial(w, req, httprouter.Params{{Key: "id", Value: "x"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestActivate_ReturnsRoom(t *testing.T) {
	h := testHandler(&mockRoomService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/id/x/activate", nil)
	req.Header.Set(httputil.HeaderUserID, "adm-1")
	req.Header.Set(httputil.HeaderUserRole, httputil.RoleAdmin)
	w := httptest.NewRecorder()

	h.Activate(w, req, httprouter.Params{{Key: "id", Value: "x"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data model.Room `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Data.IsActive {
		t.Errorf("expected activated room in response")
	}
}

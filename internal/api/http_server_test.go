package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"
)

// Mocks

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, email, password, deviceInfo string) (*models.TokenPair, error) {
	args := m.Called(ctx, email, password, deviceInfo)
	if p := args.Get(0); p != nil {
		return p.(*models.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if p := args.Get(0); p != nil {
		return p.(*models.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	args := m.Called(ctx, refreshToken)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockReservationService struct{ mock.Mock }

func (m *mockReservationService) CreateReservation(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	args := m.Called(ctx, r)
	if res := args.Get(0); res != nil {
		return res.(*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationService) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationService) UpdateReservation(ctx context.Context, id int64, upd models.ReservationUpdate) (*models.Reservation, error) {
	args := m.Called(ctx, id, upd)
	if res := args.Get(0); res != nil {
		return res.(*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationService) DeleteReservation(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	args := m.Called(ctx, filter)
	if res := args.Get(0); res != nil {
		return res.([]*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAvailabilityService struct{ mock.Mock }

func (m *mockAvailabilityService) AvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, error) {
	args := m.Called(ctx, hotelID, rng)
	if res := args.Get(0); res != nil {
		return res.([]*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAvailabilityService) IsRoomAvailable(ctx context.Context, roomID int64, rng models.DateRange) (bool, error) {
	args := m.Called(ctx, roomID, rng)
	return args.Bool(0), args.Error(1)
}

func (m *mockAvailabilityService) OccupyingReservations(ctx context.Context, roomID int64, rng models.DateRange) ([]*models.Reservation, error) {
	args := m.Called(ctx, roomID, rng)
	if res := args.Get(0); res != nil {
		return res.([]*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHotelService struct{ mock.Mock }

func (m *mockHotelService) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	return m.Called(ctx, hotel).Error(0)
}

func (m *mockHotelService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	if h := args.Get(0); h != nil {
		return h.(*models.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHotelService) UpdateHotel(ctx context.Context, hotel *models.Hotel) error {
	return m.Called(ctx, hotel).Error(0)
}

func (m *mockHotelService) DeactivateHotel(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHotelService) ListHotels(ctx context.Context, skip, limit int, activeOnly bool) ([]*models.Hotel, error) {
	args := m.Called(ctx, skip, limit, activeOnly)
	if h := args.Get(0); h != nil {
		return h.([]*models.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRoomService struct{ mock.Mock }

func (m *mockRoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if room := args.Get(0); room != nil {
		return room.(*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomService) UpdateRoom(ctx context.Context, id int64, upd models.RoomUpdate) (*models.Room, error) {
	args := m.Called(ctx, id, upd)
	if room := args.Get(0); room != nil {
		return room.(*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomService) DeleteRoom(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRoomService) ListRooms(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Room, error) {
	args := m.Called(ctx, skip, limit, availableOnly)
	if rooms := args.Get(0); rooms != nil {
		return rooms.([]*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomService) RoomsByHotel(ctx context.Context, hotelID int64, availableOnly bool) ([]*models.Room, error) {
	args := m.Called(ctx, hotelID, availableOnly)
	if rooms := args.Get(0); rooms != nil {
		return rooms.([]*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, name, email, password, role string, hotelID int64) (*models.User, error) {
	args := m.Called(ctx, name, email, password, role, hotelID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	args := m.Called(ctx, skip, limit)
	if u := args.Get(0); u != nil {
		return u.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) SetUserActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

// Harness

type testServer struct {
	srv          *HTTPServer
	auth         *mockAuthService
	reservations *mockReservationService
	availability *mockAvailabilityService
	hotels       *mockHotelService
	rooms        *mockRoomService
	users        *mockUserService
}

func newTestServer(t *testing.T, cfg config.APIConfig) *testServer {
	t.Helper()

	ts := &testServer{
		auth:         new(mockAuthService),
		reservations: new(mockReservationService),
		availability: new(mockAvailabilityService),
		hotels:       new(mockHotelService),
		rooms:        new(mockRoomService),
		users:        new(mockUserService),
	}

	logger := zerolog.Nop()
	ts.srv = NewHTTPServer(cfg, Deps{
		Auth:         ts.auth,
		Reservations: ts.reservations,
		Availability: ts.availability,
		Hotels:       ts.hotels,
		Rooms:        ts.rooms,
		Users:        ts.users,
	}, &logger)
	return ts
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func superAdmin() *models.User {
	return &models.User{ID: 1, Email: "root@example.com", Role: models.RoleSuperAdmin, IsActive: true}
}

func hotelAdmin(hotelID int64) *models.User {
	return &models.User{ID: 2, Email: "admin@example.com", Role: models.RoleAdminHotel, HotelID: hotelID, IsActive: true}
}

func viewer() *models.User {
	return &models.User{ID: 3, Email: "viewer@example.com", Role: models.RoleViewer, IsActive: true}
}

func defaultCfg() config.APIConfig {
	return config.APIConfig{Port: 0, RateLimit: config.APIRateLimitConfig{RPS: 0}}
}

// Tests

func TestHealthIsPublic(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	rec := ts.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, defaultCfg())

	t.Run("Success", func(t *testing.T) {
		pair := &models.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer", ExpiresIn: 1800}
		ts.auth.On("Login", mock.Anything, "root@example.com", "secret", "cli").Return(pair, nil).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "root@example.com", "password": "secret", "device_info": "cli",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.TokenPair
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "acc", got.AccessToken)
		assert.Equal(t, "bearer", got.TokenType)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		ts.auth.On("Login", mock.Anything, "root@example.com", "wrong", "").
			Return(nil, database.ErrInvalidCredentials).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "root@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		ts.srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRefreshRejectsBadToken(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	ts.auth.On("Refresh", mock.Anything, "garbage").Return(nil, database.ErrInvalidToken).Once()

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t, defaultCfg())

	t.Run("MissingToken", func(t *testing.T) {
		rec := ts.request(t, http.MethodGet, "/api/v1/reservations", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RejectedToken", func(t *testing.T) {
		ts.auth.On("ResolveUser", mock.Anything, "bad").Return(nil, database.ErrInvalidToken).Once()
		rec := ts.request(t, http.MethodGet, "/api/v1/reservations", "bad", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AcceptedToken", func(t *testing.T) {
		ts.auth.On("ResolveUser", mock.Anything, "ok").Return(viewer(), nil).Once()
		ts.reservations.On("ListReservations", mock.Anything, mock.Anything).
			Return([]*models.Reservation{}, nil).Once()
		rec := ts.request(t, http.MethodGet, "/api/v1/reservations", "ok", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCreateReservation(t *testing.T) {
	body := map[string]any{
		"hotel_id": 1, "room_id": 2, "visitor_id": 3,
		"start_date": "2026-06-01", "end_date": "2026-06-05",
		"type": "room_only", "total_price": 400,
	}

	t.Run("Created", func(t *testing.T) {
		ts := newTestServer(t, defaultCfg())
		ts.auth.On("ResolveUser", mock.Anything, "adm").Return(hotelAdmin(1), nil).Once()
		ts.reservations.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool {
			return r.HotelID == 1 && r.RoomID == 2 && r.StartDate.Format(models.DateLayout) == "2026-06-01"
		})).Return(&models.Reservation{ID: 77, HotelID: 1, RoomID: 2, Status: models.StatusPending}, nil).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/reservations", "adm", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var got models.Reservation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(77), got.ID)
	})

	t.Run("ConflictMapsTo409", func(t *testing.T) {
		ts := newTestServer(t, defaultCfg())
		ts.auth.On("ResolveUser", mock.Anything, "adm").Return(hotelAdmin(1), nil).Once()
		ts.reservations.On("CreateReservation", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: room 2", database.ErrNotAvailable)).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/reservations", "adm", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("InvalidReferenceMapsTo422", func(t *testing.T) {
		ts := newTestServer(t, defaultCfg())
		ts.auth.On("ResolveUser", mock.Anything, "adm").Return(hotelAdmin(1), nil).Once()
		ts.reservations.On("CreateReservation", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: room 2 belongs to hotel 9", database.ErrInvalidReference)).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/reservations", "adm", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("EndBeforeStartRejected", func(t *testing.T) {
		ts := newTestServer(t, defaultCfg())
		ts.auth.On("ResolveUser", mock.Anything, "adm").Return(hotelAdmin(1), nil).Once()

		bad := map[string]any{
			"hotel_id": 1, "room_id": 2, "visitor_id": 3,
			"start_date": "2026-06-05", "end_date": "2026-06-01",
		}
		rec := ts.request(t, http.MethodPost, "/api/v1/reservations", "adm", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ts.reservations.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("ViewerForbidden", func(t *testing.T) {
		ts := newTestServer(t, defaultCfg())
		ts.auth.On("ResolveUser", mock.Anything, "view").Return(viewer(), nil).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/reservations", "view", body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ForeignHotelForbidden", func(t *testing.T) {
		ts := newTestServer(t, defaultCfg())
		ts.auth.On("ResolveUser", mock.Anything, "adm9").Return(hotelAdmin(9), nil).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/reservations", "adm9", body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		ts.reservations.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})
}

func TestUpdateReservation(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	ts.auth.On("ResolveUser", mock.Anything, "adm").Return(hotelAdmin(1), nil)

	existing := &models.Reservation{ID: 5, HotelID: 1, RoomID: 2, Status: models.StatusPending}
	ts.reservations.On("GetReservation", mock.Anything, int64(5)).Return(existing, nil).Once()
	ts.reservations.On("UpdateReservation", mock.Anything, int64(5), mock.MatchedBy(func(u models.ReservationUpdate) bool {
		return u.Status != nil && *u.Status == models.StatusConfirmed && u.StartDate == nil
	})).Return(&models.Reservation{ID: 5, HotelID: 1, Status: models.StatusConfirmed}, nil).Once()

	rec := ts.request(t, http.MethodPut, "/api/v1/reservations/5", "adm", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestGetReservationNotFound(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	ts.auth.On("ResolveUser", mock.Anything, "view").Return(viewer(), nil).Once()
	ts.reservations.On("GetReservation", mock.Anything, int64(404)).Return(nil, database.ErrNotFound).Once()

	rec := ts.request(t, http.MethodGet, "/api/v1/reservations/404", "view", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHotelAvailability(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	ts.auth.On("ResolveUser", mock.Anything, "view").Return(viewer(), nil)

	t.Run("Success", func(t *testing.T) {
		rooms := []*models.Room{{ID: 1, HotelID: 3, RoomNumber: "101"}}
		ts.availability.On("AvailableRooms", mock.Anything, int64(3), mock.MatchedBy(func(rng models.DateRange) bool {
			return rng.Start.Format(models.DateLayout) == "2026-06-01"
		})).Return(rooms, nil).Once()

		rec := ts.request(t, http.MethodGet, "/api/v1/hotels/3/availability?start_date=2026-06-01&end_date=2026-06-05", "view", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"101"`)
	})

	t.Run("MissingDates", func(t *testing.T) {
		rec := ts.request(t, http.MethodGet, "/api/v1/hotels/3/availability", "view", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownHotel", func(t *testing.T) {
		ts.availability.On("AvailableRooms", mock.Anything, int64(99), mock.Anything).
			Return(nil, database.ErrNotFound).Once()

		rec := ts.request(t, http.MethodGet, "/api/v1/hotels/99/availability?start_date=2026-06-01&end_date=2026-06-05", "view", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListRooms(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	ts.auth.On("ResolveUser", mock.Anything, "view").Return(viewer(), nil)

	t.Run("Default", func(t *testing.T) {
		rooms := []*models.Room{{ID: 1, HotelID: 3, RoomNumber: "101"}, {ID: 2, HotelID: 4, RoomNumber: "204"}}
		ts.rooms.On("ListRooms", mock.Anything, 0, 100, false).Return(rooms, nil).Once()

		rec := ts.request(t, http.MethodGet, "/api/v1/rooms", "view", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"204"`)
	})

	t.Run("AvailableOnlyWithPagination", func(t *testing.T) {
		ts.rooms.On("ListRooms", mock.Anything, 10, 5, true).Return([]*models.Room{}, nil).Once()

		rec := ts.request(t, http.MethodGet, "/api/v1/rooms?skip=10&limit=5&available_only=true", "view", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		ts.rooms.AssertExpectations(t)
	})
}

func TestRoomAvailability(t *testing.T) {
	ts := newTestServer(t, defaultCfg())
	ts.auth.On("ResolveUser", mock.Anything, "view").Return(viewer(), nil).Once()
	ts.availability.On("IsRoomAvailable", mock.Anything, int64(7), mock.Anything).Return(false, nil).Once()

	rec := ts.request(t, http.MethodGet, "/api/v1/rooms/7/availability?start_date=2026-06-01&end_date=2026-06-05", "view", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":false`)
}

func TestUserManagementRequiresSuperAdmin(t *testing.T) {
	ts := newTestServer(t, defaultCfg())

	t.Run("HotelAdminForbidden", func(t *testing.T) {
		ts.auth.On("ResolveUser", mock.Anything, "adm").Return(hotelAdmin(1), nil).Once()
		rec := ts.request(t, http.MethodGet, "/api/v1/users", "adm", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("SuperAdminAllowed", func(t *testing.T) {
		ts.auth.On("ResolveUser", mock.Anything, "root").Return(superAdmin(), nil).Once()
		ts.users.On("ListUsers", mock.Anything, 0, models.DefaultPageLimit).
			Return([]*models.User{}, nil).Once()
		rec := ts.request(t, http.MethodGet, "/api/v1/users", "root", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RegisterDuplicateEmail", func(t *testing.T) {
		ts.auth.On("ResolveUser", mock.Anything, "root").Return(superAdmin(), nil).Once()
		ts.users.On("Register", mock.Anything, "Dup", "dup@example.com", "password1", "viewer", int64(0)).
			Return(nil, database.ErrAlreadyExists).Once()

		rec := ts.request(t, http.MethodPost, "/api/v1/users", "root", map[string]any{
			"name": "Dup", "email": "dup@example.com", "password": "password1", "role": "viewer",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	cfg := defaultCfg()
	cfg.RateLimit = config.APIRateLimitConfig{RPS: 0.001, Burst: 1}
	ts := newTestServer(t, cfg)

	first := ts.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := ts.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRequestIDEcho(t *testing.T) {
	ts := newTestServer(t, defaultCfg())

	rec := ts.request(t, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec2 := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec2, req)
	assert.Equal(t, "fixed-id", rec2.Header().Get("X-Request-ID"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/v1/reservations/:id", normalizePath("/api/v1/reservations/42"))
	assert.Equal(t, "/api/v1/hotels/:id/availability", normalizePath("/api/v1/hotels/7/availability"))
	assert.Equal(t, "/api/v1/hotels", normalizePath("/api/v1/hotels"))
}

// Compile-time interface checks for the mocks.
var (
	_ domain.AuthService         = (*mockAuthService)(nil)
	_ domain.ReservationService  = (*mockReservationService)(nil)
	_ domain.AvailabilityService = (*mockAvailabilityService)(nil)
	_ domain.HotelService        = (*mockHotelService)(nil)
	_ domain.RoomService         = (*mockRoomService)(nil)
	_ domain.UserService         = (*mockUserService)(nil)
)

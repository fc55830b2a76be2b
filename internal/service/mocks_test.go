package service

import (
	"context"
	"time"

	"hotelier/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}
func (m *mockStore) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) CreateReservationWithLock(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) UpdateReservationWithConflictCheck(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) DeleteReservation(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ListReservations(ctx context.Context, f models.ReservationFilter) ([]*models.Reservation, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reservation), args.Error(1)
}
func (m *mockStore) CountConflicts(ctx context.Context, roomID int64, rng models.DateRange, excludeID int64) (int, error) {
	args := m.Called(ctx, roomID, rng, excludeID)
	return args.Int(0), args.Error(1)
}
func (m *mockStore) GetOccupyingReservations(ctx context.Context, roomID int64, rng models.DateRange) ([]*models.Reservation, error) {
	args := m.Called(ctx, roomID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *mockStore) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}
func (m *mockStore) CreateHotel(ctx context.Context, h *models.Hotel) error {
	return m.Called(ctx, h).Error(0)
}
func (m *mockStore) UpdateHotel(ctx context.Context, h *models.Hotel) error {
	return m.Called(ctx, h).Error(0)
}
func (m *mockStore) DeactivateHotel(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ListHotels(ctx context.Context, skip, limit int, activeOnly bool) ([]*models.Hotel, error) {
	args := m.Called(ctx, skip, limit, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Hotel), args.Error(1)
}

func (m *mockStore) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockStore) CreateRoom(ctx context.Context, r *models.Room) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) UpdateRoom(ctx context.Context, r *models.Room) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) DeleteRoom(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) GetRoomsByHotel(ctx context.Context, hotelID int64, availableOnly bool) ([]*models.Room, error) {
	args := m.Called(ctx, hotelID, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}
func (m *mockStore) ListRooms(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Room, error) {
	args := m.Called(ctx, skip, limit, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *mockStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockStore) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *mockStore) UpdateUserLastLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) SetUserActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockStore) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockStore) FindActiveRefreshToken(ctx context.Context, tokenHash string, userID int64) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}
func (m *mockStore) DeactivateRefreshToken(ctx context.Context, tokenHash string, userID int64) (bool, error) {
	args := m.Called(ctx, tokenHash, userID)
	return args.Bool(0), args.Error(1)
}
func (m *mockStore) DeactivateUserRefreshTokens(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockStore) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CreateSyncTask(ctx context.Context, t *models.SyncTask) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockStore) GetPendingSyncTasks(ctx context.Context, limit int) ([]models.SyncTask, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SyncTask), args.Error(1)
}
func (m *mockStore) UpdateSyncTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error {
	return m.Called(ctx, id, status, errMsg, nextRetryAt).Error(0)
}

type mockSyncWorker struct {
	mock.Mock
}

func (m *mockSyncWorker) EnqueueTask(ctx context.Context, taskType string, reservationID int64) error {
	return m.Called(ctx, taskType, reservationID).Error(0)
}

type mockAvailabilityCache struct {
	mock.Mock
}

func (m *mockAvailabilityCache) GetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, bool, error) {
	args := m.Called(ctx, hotelID, rng)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*models.Room), args.Bool(1), args.Error(2)
}
func (m *mockAvailabilityCache) SetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange, rooms []*models.Room, ttl time.Duration) error {
	return m.Called(ctx, hotelID, rng, rooms, ttl).Error(0)
}
func (m *mockAvailabilityCache) InvalidateHotel(ctx context.Context, hotelID int64) error {
	return m.Called(ctx, hotelID).Error(0)
}

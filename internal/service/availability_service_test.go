package service

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serviceRange(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	rng, err := models.NewDateRange(start, end)
	require.NoError(t, err)
	return rng
}

func TestAvailableRooms(t *testing.T) {
	ctx := context.Background()
	rng := serviceRange(t, "2024-06-01", "2024-06-05")

	rooms := []*models.Room{
		{ID: 10, HotelID: 1, RoomNumber: "101"},
		{ID: 11, HotelID: 1, RoomNumber: "102"},
		{ID: 12, HotelID: 1, RoomNumber: "103", IsAvailable: false},
	}

	t.Run("FiltersConflictingRooms", func(t *testing.T) {
		store := new(mockStore)
		svc := NewAvailabilityService(store, NewConflictResolver(store), nil, time.Minute, testLogger())

		store.On("GetHotel", ctx, int64(1)).Return(fixtureHotel(), nil)
		store.On("GetRoomsByHotel", ctx, int64(1), false).Return(rooms, nil)
		store.On("CountConflicts", ctx, int64(10), rng, int64(0)).Return(1, nil)
		store.On("CountConflicts", ctx, int64(11), rng, int64(0)).Return(0, nil)
		store.On("CountConflicts", ctx, int64(12), rng, int64(0)).Return(0, nil)

		got, err := svc.AvailableRooms(ctx, 1, rng)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "102", got[0].RoomNumber)
		// Ручной флаг is_available не влияет на занятость
		assert.Equal(t, "103", got[1].RoomNumber)
	})

	t.Run("CacheHitSkipsStore", func(t *testing.T) {
		store := new(mockStore)
		cache := new(mockAvailabilityCache)
		svc := NewAvailabilityService(store, NewConflictResolver(store), cache, time.Minute, testLogger())

		cached := []*models.Room{{ID: 11, HotelID: 1, RoomNumber: "102"}}
		store.On("GetHotel", ctx, int64(1)).Return(fixtureHotel(), nil)
		cache.On("GetAvailableRooms", ctx, int64(1), rng).Return(cached, true, nil)

		got, err := svc.AvailableRooms(ctx, 1, rng)
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		store.AssertNotCalled(t, "GetRoomsByHotel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CacheMissFillsCache", func(t *testing.T) {
		store := new(mockStore)
		cache := new(mockAvailabilityCache)
		svc := NewAvailabilityService(store, NewConflictResolver(store), cache, time.Minute, testLogger())

		store.On("GetHotel", ctx, int64(1)).Return(fixtureHotel(), nil)
		cache.On("GetAvailableRooms", ctx, int64(1), rng).Return(nil, false, nil)
		store.On("GetRoomsByHotel", ctx, int64(1), false).Return(rooms[:1], nil)
		store.On("CountConflicts", ctx, int64(10), rng, int64(0)).Return(0, nil)
		cache.On("SetAvailableRooms", ctx, int64(1), rng, mock.Anything, time.Minute).Return(nil)

		got, err := svc.AvailableRooms(ctx, 1, rng)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		cache.AssertExpectations(t)
	})

	t.Run("UnknownHotel", func(t *testing.T) {
		store := new(mockStore)
		svc := NewAvailabilityService(store, NewConflictResolver(store), nil, time.Minute, testLogger())

		store.On("GetHotel", ctx, int64(404)).Return(nil, database.ErrNotFound)
		_, err := svc.AvailableRooms(ctx, 404, rng)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestIsRoomAvailable(t *testing.T) {
	ctx := context.Background()
	rng := serviceRange(t, "2024-06-01", "2024-06-05")

	t.Run("Available", func(t *testing.T) {
		store := new(mockStore)
		svc := NewAvailabilityService(store, NewConflictResolver(store), nil, time.Minute, testLogger())

		store.On("GetRoom", ctx, int64(10)).Return(fixtureRoom(), nil)
		store.On("CountConflicts", ctx, int64(10), rng, int64(0)).Return(0, nil)

		ok, err := svc.IsRoomAvailable(ctx, 10, rng)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Occupied", func(t *testing.T) {
		store := new(mockStore)
		svc := NewAvailabilityService(store, NewConflictResolver(store), nil, time.Minute, testLogger())

		store.On("GetRoom", ctx, int64(10)).Return(fixtureRoom(), nil)
		store.On("CountConflicts", ctx, int64(10), rng, int64(0)).Return(2, nil)

		ok, err := svc.IsRoomAvailable(ctx, 10, rng)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		store := new(mockStore)
		svc := NewAvailabilityService(store, NewConflictResolver(store), nil, time.Minute, testLogger())

		store.On("GetRoom", ctx, int64(404)).Return(nil, database.ErrNotFound)
		_, err := svc.IsRoomAvailable(ctx, 404, rng)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestFilterConflicting(t *testing.T) {
	resolver := NewConflictResolver(nil)
	rng := serviceRange(t, "2024-06-04", "2024-06-08")

	reservations := []*models.Reservation{
		{ID: 1, StartDate: mustDate(t, "2024-06-01"), EndDate: mustDate(t, "2024-06-05"), Status: models.StatusConfirmed},
		{ID: 2, StartDate: mustDate(t, "2024-06-01"), EndDate: mustDate(t, "2024-06-05"), Status: models.StatusCancelled},
		{ID: 3, StartDate: mustDate(t, "2024-06-09"), EndDate: mustDate(t, "2024-06-12"), Status: models.StatusCheckedIn},
		{ID: 4, StartDate: mustDate(t, "2024-06-08"), EndDate: mustDate(t, "2024-06-10"), Status: models.StatusCheckedIn},
	}

	got := resolver.FilterConflicting(reservations, rng)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	// Граница диапазона включительно: заезд в день конца тоже конфликт
	assert.Equal(t, int64(4), got[1].ID)
}

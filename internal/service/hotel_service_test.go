package service

import (
	"context"
	"testing"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateHotel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		svc := NewHotelService(store, testLogger())

		store.On("CreateHotel", ctx, mock.AnythingOfType("*models.Hotel")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Hotel).ID = 7
		}).Return(nil)

		hotel := &models.Hotel{Name: "Морской бриз", City: "Сочи", MaxCapacity: 40}
		require.NoError(t, svc.CreateHotel(ctx, hotel))
		assert.Equal(t, int64(7), hotel.ID)
		// Новый отель всегда активен
		assert.True(t, hotel.IsActive)
	})

	t.Run("EmptyName", func(t *testing.T) {
		store := new(mockStore)
		svc := NewHotelService(store, testLogger())

		err := svc.CreateHotel(ctx, &models.Hotel{City: "Сочи", MaxCapacity: 10})
		assert.ErrorIs(t, err, database.ErrValidation)
		store.AssertNotCalled(t, "CreateHotel", mock.Anything, mock.Anything)
	})

	t.Run("SingleCharName", func(t *testing.T) {
		svc := NewHotelService(new(mockStore), testLogger())
		err := svc.CreateHotel(ctx, &models.Hotel{Name: "Б", MaxCapacity: 10})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("WhitespaceName", func(t *testing.T) {
		svc := NewHotelService(new(mockStore), testLogger())
		err := svc.CreateHotel(ctx, &models.Hotel{Name: "  X  ", MaxCapacity: 10})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		store := new(mockStore)
		svc := NewHotelService(store, testLogger())
		err := svc.CreateHotel(ctx, &models.Hotel{Name: "Бриз"})
		assert.ErrorIs(t, err, database.ErrValidation)
		store.AssertNotCalled(t, "CreateHotel", mock.Anything, mock.Anything)
	})

	t.Run("NegativeCapacity", func(t *testing.T) {
		svc := NewHotelService(new(mockStore), testLogger())
		err := svc.CreateHotel(ctx, &models.Hotel{Name: "Бриз", MaxCapacity: -1})
		assert.ErrorIs(t, err, database.ErrValidation)
	})
}

func TestUpdateHotel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		svc := NewHotelService(store, testLogger())

		hotel := &models.Hotel{ID: 1, Name: "Бриз", City: "Анапа", MaxCapacity: 25}
		store.On("UpdateHotel", ctx, hotel).Return(nil)
		require.NoError(t, svc.UpdateHotel(ctx, hotel))
		store.AssertExpectations(t)
	})

	t.Run("EmptyName", func(t *testing.T) {
		svc := NewHotelService(new(mockStore), testLogger())
		err := svc.UpdateHotel(ctx, &models.Hotel{ID: 1, MaxCapacity: 25})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		svc := NewHotelService(new(mockStore), testLogger())
		err := svc.UpdateHotel(ctx, &models.Hotel{ID: 1, Name: "Бриз"})
		assert.ErrorIs(t, err, database.ErrValidation)
	})
}

func TestDeactivateHotel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		svc := NewHotelService(store, testLogger())

		store.On("DeactivateHotel", ctx, int64(3)).Return(nil)
		require.NoError(t, svc.DeactivateHotel(ctx, 3))
	})

	t.Run("NotFound", func(t *testing.T) {
		store := new(mockStore)
		svc := NewHotelService(store, testLogger())

		store.On("DeactivateHotel", ctx, int64(99)).Return(database.ErrNotFound)
		assert.ErrorIs(t, svc.DeactivateHotel(ctx, 99), database.ErrNotFound)
	})
}

func TestListHotels(t *testing.T) {
	ctx := context.Background()

	store := new(mockStore)
	svc := NewHotelService(store, testLogger())

	hotels := []*models.Hotel{{ID: 1, Name: "Бриз"}, {ID: 2, Name: "Прибой"}}
	store.On("ListHotels", ctx, 0, 50, true).Return(hotels, nil)

	got, err := svc.ListHotels(ctx, 0, 50, true)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

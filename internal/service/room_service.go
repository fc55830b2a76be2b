package service

import (
	"context"
	"fmt"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type RoomService struct {
	store  domain.Store
	cache  domain.AvailabilityCache
	logger *zerolog.Logger
}

func NewRoomService(store domain.Store, cache domain.AvailabilityCache, logger *zerolog.Logger) *RoomService {
	return &RoomService{store: store, cache: cache, logger: logger}
}

func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := s.validate(room); err != nil {
		return err
	}
	if _, err := s.store.GetHotel(ctx, room.HotelID); err != nil {
		return err
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return err
	}
	s.invalidate(ctx, room.HotelID)
	return nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.store.GetRoom(ctx, id)
}

func (s *RoomService) UpdateRoom(ctx context.Context, id int64, upd models.RoomUpdate) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.RoomNumber != nil {
		room.RoomNumber = *upd.RoomNumber
	}
	if upd.PricePerNight != nil {
		room.PricePerNight = *upd.PricePerNight
	}
	if upd.Description != nil {
		room.Description = *upd.Description
	}
	if upd.Type != nil {
		room.Type = *upd.Type
	}
	if upd.MaxOccupancy != nil {
		room.MaxOccupancy = *upd.MaxOccupancy
	}
	if upd.IsAvailable != nil {
		room.IsAvailable = *upd.IsAvailable
	}

	if err := s.validate(room); err != nil {
		return nil, err
	}
	if err := s.store.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.invalidate(ctx, room.HotelID)
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, room.HotelID)
	return nil
}

func (s *RoomService) ListRooms(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Room, error) {
	return s.store.ListRooms(ctx, skip, limit, availableOnly)
}

func (s *RoomService) RoomsByHotel(ctx context.Context, hotelID int64, availableOnly bool) ([]*models.Room, error) {
	if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.store.GetRoomsByHotel(ctx, hotelID, availableOnly)
}

func (s *RoomService) validate(room *models.Room) error {
	if room.RoomNumber == "" {
		return fmt.Errorf("%w: room number is required", database.ErrValidation)
	}
	if !models.IsValidRoomType(room.Type) {
		return fmt.Errorf("%w: unknown room type %q", database.ErrValidation, room.Type)
	}
	if room.PricePerNight < 0 {
		return fmt.Errorf("%w: price per night must not be negative", database.ErrValidation)
	}
	if room.MaxOccupancy < 1 || room.MaxOccupancy > 10 {
		return fmt.Errorf("%w: max occupancy must be between 1 and 10", database.ErrValidation)
	}
	return nil
}

func (s *RoomService) invalidate(ctx context.Context, hotelID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateHotel(ctx, hotelID); err != nil {
		s.logger.Error().Err(err).Int64("hotel_id", hotelID).Msg("availability cache invalidation error")
	}
}

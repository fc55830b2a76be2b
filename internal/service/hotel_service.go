package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type HotelService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewHotelService(store domain.Store, logger *zerolog.Logger) *HotelService {
	return &HotelService{store: store, logger: logger}
}

func (s *HotelService) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	if err := s.validate(hotel); err != nil {
		return err
	}
	hotel.IsActive = true
	return s.store.CreateHotel(ctx, hotel)
}

func (s *HotelService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

func (s *HotelService) UpdateHotel(ctx context.Context, hotel *models.Hotel) error {
	if err := s.validate(hotel); err != nil {
		return err
	}
	return s.store.UpdateHotel(ctx, hotel)
}

func (s *HotelService) validate(hotel *models.Hotel) error {
	if utf8.RuneCountInString(strings.TrimSpace(hotel.Name)) < 2 {
		return fmt.Errorf("%w: hotel name must be at least 2 characters", database.ErrValidation)
	}
	if hotel.MaxCapacity < 1 {
		return fmt.Errorf("%w: max capacity must be at least 1", database.ErrValidation)
	}
	return nil
}

// DeactivateHotel мягко удаляет отель; бронирования его номеров не
// трогаем.
func (s *HotelService) DeactivateHotel(ctx context.Context, id int64) error {
	if err := s.store.DeactivateHotel(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("hotel_id", id).Msg("hotel deactivated")
	return nil
}

func (s *HotelService) ListHotels(ctx context.Context, skip, limit int, activeOnly bool) ([]*models.Hotel, error) {
	return s.store.ListHotels(ctx, skip, limit, activeOnly)
}

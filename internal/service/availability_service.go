package service

import (
	"context"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// AvailabilityService отвечает на вопрос "какие номера свободны в
// диапазоне". Ручной флаг is_available здесь не учитывается: занятость
// определяется только пересечением с занимающими бронированиями.
type AvailabilityService struct {
	store    domain.Store
	resolver *ConflictResolver
	cache    domain.AvailabilityCache
	cacheTTL time.Duration
	logger   *zerolog.Logger
}

func NewAvailabilityService(store domain.Store, resolver *ConflictResolver, cache domain.AvailabilityCache, cacheTTL time.Duration, logger *zerolog.Logger) *AvailabilityService {
	if cacheTTL <= 0 {
		cacheTTL = models.AvailabilityCacheTTL * time.Second
	}
	return &AvailabilityService{
		store:    store,
		resolver: resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// AvailableRooms возвращает номера отеля без конфликтов в диапазоне.
// Снимок кэшируется по ключу отель+диапазон, промах пересчитывает.
func (s *AvailabilityService) AvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, error) {
	if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		rooms, ok, err := s.cache.GetAvailableRooms(ctx, hotelID, rng)
		if err != nil {
			s.logger.Warn().Err(err).Int64("hotel_id", hotelID).Msg("availability cache read error")
		} else if ok {
			return rooms, nil
		}
	}

	rooms, err := s.store.GetRoomsByHotel(ctx, hotelID, false)
	if err != nil {
		return nil, err
	}

	available := make([]*models.Room, 0, len(rooms))
	for _, room := range rooms {
		conflict, err := s.resolver.HasConflict(ctx, room.ID, rng, 0)
		if err != nil {
			return nil, err
		}
		if !conflict {
			available = append(available, room)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetAvailableRooms(ctx, hotelID, rng, available, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Int64("hotel_id", hotelID).Msg("availability cache write error")
		}
	}

	return available, nil
}

func (s *AvailabilityService) IsRoomAvailable(ctx context.Context, roomID int64, rng models.DateRange) (bool, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return false, err
	}
	conflict, err := s.resolver.HasConflict(ctx, roomID, rng, 0)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// OccupyingReservations отдает занимающие бронирования номера в
// диапазоне, для отчетов занятости.
func (s *AvailabilityService) OccupyingReservations(ctx context.Context, roomID int64, rng models.DateRange) ([]*models.Reservation, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.store.GetOccupyingReservations(ctx, roomID, rng)
}

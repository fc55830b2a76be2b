package repository

import (
	"context"
	"sync/atomic"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// FailoverAvailabilityCache пишет и читает через primary (Redis), а при
// его отказе переходит на fallback в памяти. Повторная проверка primary
// не чаще раза в минуту.
type FailoverAvailabilityCache struct {
	primary  domain.AvailabilityCache
	fallback domain.AvailabilityCache
	logger   *zerolog.Logger
	isDown   atomic.Bool
	// lastCheck — unix-наносекунды последней неудачной попытки primary.
	lastCheck atomic.Int64
}

func NewFailoverAvailabilityCache(primary, fallback domain.AvailabilityCache, logger *zerolog.Logger) *FailoverAvailabilityCache {
	return &FailoverAvailabilityCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverAvailabilityCache) GetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, bool, error) {
	if !c.isDown.Load() {
		rooms, ok, err := c.primary.GetAvailableRooms(ctx, hotelID, rng)
		if err == nil {
			return rooms, ok, nil
		}
		c.logger.Error().Err(err).Msg("Primary availability cache failed, falling back to memory")
		c.isDown.Store(true)
		c.lastCheck.Store(time.Now().UnixNano())
	}

	// Try to recover after 1 minute
	if c.isDown.Load() && time.Since(time.Unix(0, c.lastCheck.Load())) > time.Minute {
		rooms, ok, err := c.primary.GetAvailableRooms(ctx, hotelID, rng)
		if err == nil {
			c.isDown.Store(false)
			return rooms, ok, nil
		}
		c.lastCheck.Store(time.Now().UnixNano())
	}

	return c.fallback.GetAvailableRooms(ctx, hotelID, rng)
}

func (c *FailoverAvailabilityCache) SetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange, rooms []*models.Room, ttl time.Duration) error {
	if !c.isDown.Load() {
		err := c.primary.SetAvailableRooms(ctx, hotelID, rng, rooms, ttl)
		if err == nil {
			return nil
		}
		c.logger.Error().Err(err).Msg("Primary availability cache failed, falling back to memory")
		c.isDown.Store(true)
		c.lastCheck.Store(time.Now().UnixNano())
	}

	return c.fallback.SetAvailableRooms(ctx, hotelID, rng, rooms, ttl)
}

// InvalidateHotel чистит оба уровня: устаревший снимок в fallback так же
// опасен, как в primary.
func (c *FailoverAvailabilityCache) InvalidateHotel(ctx context.Context, hotelID int64) error {
	var primaryErr error
	if !c.isDown.Load() {
		primaryErr = c.primary.InvalidateHotel(ctx, hotelID)
		if primaryErr != nil {
			c.logger.Error().Err(primaryErr).Msg("Primary availability cache failed, falling back to memory")
			c.isDown.Store(true)
			c.lastCheck.Store(time.Now().UnixNano())
		}
	}

	if err := c.fallback.InvalidateHotel(ctx, hotelID); err != nil {
		return err
	}
	return primaryErr
}

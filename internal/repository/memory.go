package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotelier/internal/models"
)

type memoryEntry struct {
	rooms     []*models.Room
	expiresAt time.Time
}

type MemoryAvailabilityCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryAvailabilityCache() *MemoryAvailabilityCache {
	return &MemoryAvailabilityCache{
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryAvailabilityCache) GetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[availabilityKey(hotelID, rng)]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, availabilityKey(hotelID, rng))
		return nil, false, nil
	}
	return entry.rooms, true, nil
}

func (c *MemoryAvailabilityCache) SetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange, rooms []*models.Room, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[availabilityKey(hotelID, rng)] = memoryEntry{
		rooms:     rooms,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryAvailabilityCache) InvalidateHotel(ctx context.Context, hotelID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := availabilityKeyPrefix(hotelID)
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func availabilityKeyPrefix(hotelID int64) string {
	return fmt.Sprintf("availability:%d:", hotelID)
}

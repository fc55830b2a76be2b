package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisAvailabilityCache struct {
	client *redis.Client
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	client := redis.NewClient(options)

	return client
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client}
}

func availabilityKey(hotelID int64, rng models.DateRange) string {
	return fmt.Sprintf("availability:%d:%s:%s",
		hotelID,
		rng.Start.Format(models.DateLayout),
		rng.End.Format(models.DateLayout))
}

func (r *RedisAvailabilityCache) GetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, availabilityKey(hotelID, rng)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get availability from redis: %w", err)
	}

	var rooms []*models.Room
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal availability: %w", err)
	}

	return rooms, true, nil
}

func (r *RedisAvailabilityCache) SetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange, rooms []*models.Room, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}

	if err := r.client.Set(ctx, availabilityKey(hotelID, rng), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set availability in redis: %w", err)
	}

	return nil
}

// InvalidateHotel снимает все закэшированные снимки отеля. Любое
// изменение бронирований или номеров делает их недостоверными.
func (r *RedisAvailabilityCache) InvalidateHotel(ctx context.Context, hotelID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	pattern := fmt.Sprintf("availability:%d:*", hotelID)
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete availability key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan availability keys: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

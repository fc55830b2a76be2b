package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelier/internal/models"
)

const roomColumns = `id, hotel_id, room_number, price_per_night, description, type,
	                 max_occupancy, is_available, created_at`

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `INSERT INTO rooms (hotel_id, room_number, price_per_night, description, type, max_occupancy, is_available, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		room.HotelID,
		room.RoomNumber,
		room.PricePerNight,
		room.Description,
		room.Type,
		room.MaxOccupancy,
		room.IsAvailable,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	room.ID = id
	room.CreatedAt = now
	return nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	room, err := scanRoom(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// GetRoomsByHotel возвращает номера отеля; availableOnly дополнительно
// фильтрует по ручному флагу is_available.
func (db *DB) GetRoomsByHotel(ctx context.Context, hotelID int64, availableOnly bool) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = ?`
	args := []any{hotelID}
	if availableOnly {
		query += ` AND is_available = 1`
	}
	query += ` ORDER BY room_number ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms by hotel: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (db *DB) ListRooms(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Room, error) {
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if availableOnly {
		query += ` WHERE is_available = 1`
	}
	query += ` ORDER BY hotel_id ASC, room_number ASC LIMIT ? OFFSET ?`

	rows, err := db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (db *DB) UpdateRoom(ctx context.Context, room *models.Room) error {
	query := `UPDATE rooms SET room_number = ?, price_per_night = ?, description = ?,
	                 type = ?, max_occupancy = ?, is_available = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		room.RoomNumber,
		room.PricePerNight,
		room.Description,
		room.Type,
		room.MaxOccupancy,
		room.IsAvailable,
		room.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to update room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteRoom(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRoom(row rowScanner) (*models.Room, error) {
	room := &models.Room{}
	err := row.Scan(
		&room.ID, &room.HotelID, &room.RoomNumber, &room.PricePerNight,
		&room.Description, &room.Type, &room.MaxOccupancy, &room.IsAvailable,
		&room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return room, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

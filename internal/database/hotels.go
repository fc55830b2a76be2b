package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const hotelColumns = `id, name, address, city, country, contact_email, contact_phone,
	                 max_capacity, is_active, created_at, updated_at`

func (db *DB) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	query := `INSERT INTO hotels (name, address, city, country, contact_email, contact_phone, max_capacity, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		hotel.Name,
		hotel.Address,
		hotel.City,
		hotel.Country,
		hotel.ContactEmail,
		hotel.ContactPhone,
		hotel.MaxCapacity,
		hotel.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	hotel.ID = id
	hotel.CreatedAt = now
	hotel.UpdatedAt = now
	return nil
}

func (db *DB) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	hotel, err := scanHotel(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return hotel, nil
}

func (db *DB) ListHotels(ctx context.Context, skip, limit int, activeOnly bool) ([]*models.Hotel, error) {
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}

	query := `SELECT ` + hotelColumns + ` FROM hotels`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY id ASC LIMIT ? OFFSET ?`

	rows, err := db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*models.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	return hotels, rows.Err()
}

func (db *DB) UpdateHotel(ctx context.Context, hotel *models.Hotel) error {
	query := `UPDATE hotels SET name = ?, address = ?, city = ?, country = ?,
	                 contact_email = ?, contact_phone = ?, max_capacity = ?,
	                 is_active = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		hotel.Name,
		hotel.Address,
		hotel.City,
		hotel.Country,
		hotel.ContactEmail,
		hotel.ContactPhone,
		hotel.MaxCapacity,
		hotel.IsActive,
		now,
		hotel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	hotel.UpdatedAt = now
	return nil
}

// DeactivateHotel мягко удаляет отель через флаг is_active; бронирования
// при этом не трогаем (жесткое удаление только у reservations).
func (db *DB) DeactivateHotel(ctx context.Context, id int64) error {
	query := `UPDATE hotels SET is_active = 0, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate hotel: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanHotel(row rowScanner) (*models.Hotel, error) {
	hotel := &models.Hotel{}
	err := row.Scan(
		&hotel.ID, &hotel.Name, &hotel.Address, &hotel.City, &hotel.Country,
		&hotel.ContactEmail, &hotel.ContactPhone, &hotel.MaxCapacity,
		&hotel.IsActive, &hotel.CreatedAt, &hotel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

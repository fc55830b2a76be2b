package models

import (
	"database/sql"
	"time"
)

// User holds only the bcrypt hash of the password, never the plaintext.
// HotelID links hotel admins to their hotel and is zero for everyone else.
type User struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"` // уникальный, ключ входа
	HashedPassword string       `json:"-"`
	Role           string       `json:"role"` // viewer, admin_hotel, super_admin
	HotelID        int64        `json:"hotel_id,omitempty"`
	IsActive       bool         `json:"is_active"`
	LastLogin      sql.NullTime `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
}

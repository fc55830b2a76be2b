package models

import "time"

// Room belongs to exactly one hotel. The IsAvailable flag is a manual
// toggle and is independent of reservation state; the availability
// query deliberately does not filter on it.
type Room struct {
	ID            int64     `json:"id"`
	HotelID       int64     `json:"hotel_id"`
	RoomNumber    string    `json:"room_number"` // unique per hotel
	PricePerNight float64   `json:"price_per_night"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"` // single, double, suite, family
	MaxOccupancy  int       `json:"max_occupancy"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoomUpdate carries a partial room update; nil fields are unchanged.
type RoomUpdate struct {
	RoomNumber    *string
	PricePerNight *float64
	Description   *string
	Type          *string
	MaxOccupancy  *int
	IsAvailable   *bool
}

package models

import "time"

// Reservation books one room for one visitor over an inclusive date
// range. It references hotel, room and visitor by id only; the full
// records are resolved through the store when needed.
type Reservation struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotel_id"`
	RoomID     int64     `json:"room_id"`
	VisitorID  int64     `json:"visitor_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Type       string    `json:"type"`   // bed_breakfast, all_inclusive, room_only
	Status     string    `json:"status"` // pending, confirmed, checked_in, checked_out, cancelled
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Range returns the reservation's booked dates as a DateRange.
func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// ReservationUpdate carries a partial update; nil fields are left
// unchanged. Date changes re-trigger the conflict check with the
// merged range.
type ReservationUpdate struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *string
	Status     *string
	TotalPrice *float64
}

// ChangesDates reports whether the update touches either date field.
func (u ReservationUpdate) ChangesDates() bool {
	return u.StartDate != nil || u.EndDate != nil
}

// ReservationFilter narrows store lookups. Zero values mean "any".
type ReservationFilter struct {
	HotelID   int64
	RoomID    int64
	VisitorID int64
	Statuses  []string
	Skip      int
	Limit     int
}

package service

import (
	"context"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"
)

// ConflictResolver answers whether a date range collides with occupying
// reservations of a room. Both bounds are treated as booked nights, so
// a stay ending on the day another begins is a conflict.
type ConflictResolver struct {
	store domain.Store
}

func NewConflictResolver(store domain.Store) *ConflictResolver {
	return &ConflictResolver{store: store}
}

// HasConflict checks the room against the store. excludeID omits one
// reservation from the check so an update does not collide with itself.
func (r *ConflictResolver) HasConflict(ctx context.Context, roomID int64, rng models.DateRange, excludeID int64) (bool, error) {
	if !rng.Valid() {
		return false, database.ErrValidation
	}
	count, err := r.store.CountConflicts(ctx, roomID, rng, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FilterConflicting returns the subset of reservations overlapping the
// range. Works on an in-memory slice, no store access.
func (r *ConflictResolver) FilterConflicting(reservations []*models.Reservation, rng models.DateRange) []*models.Reservation {
	var conflicting []*models.Reservation
	for _, res := range reservations {
		if !models.IsOccupying(res.Status) {
			continue
		}
		if res.Range().Overlaps(rng) {
			conflicting = append(conflicting, res)
		}
	}
	return conflicting
}

package google

import (
	"testing"
	"time"

	"hotelier/internal/models"
)

func TestReservationRowValues(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 5, 21, 11, 0, 0, 0, time.UTC)

	r := &models.Reservation{
		ID:         123,
		HotelID:    7,
		RoomID:     42,
		VisitorID:  9,
		StartDate:  start,
		EndDate:    end,
		Type:       models.TypeBedBreakfast,
		Status:     models.StatusConfirmed,
		TotalPrice: 480.5,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}

	values := reservationRowValues(r)

	expected := []interface{}{
		int64(123),
		int64(7),
		int64(42),
		int64(9),
		"2026-06-01",
		"2026-06-05",
		"bed_breakfast",
		"confirmed",
		480.5,
		"2026-05-20 10:00:00",
		"2026-05-21 11:00:00",
	}

	if len(values) != len(expected) {
		t.Fatalf("Expected %d values, got %d", len(expected), len(values))
	}

	for i, v := range values {
		if v != expected[i] {
			t.Errorf("At index %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestCacheOperations(t *testing.T) {
	s := &SheetsService{
		rowCache: make(map[int64]int),
	}

	if _, ok := s.getCachedRow(1); ok {
		t.Errorf("Expected cache miss for empty cache")
	}

	s.setCachedRow(1, 5)
	row, ok := s.getCachedRow(1)
	if !ok || row != 5 {
		t.Errorf("Expected row 5, got %d (ok=%v)", row, ok)
	}

	s.deleteCacheRow(1)
	if _, ok := s.getCachedRow(1); ok {
		t.Errorf("Expected cache miss after delete")
	}

	s.setCachedRow(2, 3)
	s.setCachedRow(3, 4)
	s.ClearCache()
	if _, ok := s.getCachedRow(2); ok {
		t.Errorf("Expected empty cache after ClearCache")
	}
}

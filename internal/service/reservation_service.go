package service

import (
	"context"
	"errors"
	"fmt"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// ReservationService владеет жизненным циклом бронирования: проверка
// ссылок, проверка конфликтов внутри транзакции, события и задачи
// синхронизации после записи.
type ReservationService struct {
	store         domain.Store
	eventBus      domain.EventPublisher
	sheetsWorker  domain.SyncWorker
	cache         domain.AvailabilityCache
	maxStayNights int
	logger        *zerolog.Logger
}

// maxStayNights ограничивает длину проживания; 0 отключает проверку.
func NewReservationService(store domain.Store, eventBus domain.EventPublisher, sheetsWorker domain.SyncWorker, cache domain.AvailabilityCache, maxStayNights int, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		store:         store,
		eventBus:      eventBus,
		sheetsWorker:  sheetsWorker,
		cache:         cache,
		maxStayNights: maxStayNights,
		logger:        logger,
	}
}

func (s *ReservationService) CreateReservation(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if err := s.validate(r); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, r); err != nil {
		return nil, err
	}

	// Проверка конфликтов и вставка в одной транзакции
	if err := s.store.CreateReservationWithLock(ctx, r); err != nil {
		if errors.Is(err, database.ErrNotAvailable) {
			metrics.IncConflictRejected()
		}
		return nil, err
	}

	metrics.IncReservationCreated()
	s.publishEvent(events.EventReservationCreated, r)
	s.enqueueSync(ctx, "upsert", r.ID)
	s.invalidateCache(ctx, r.HotelID)

	return r, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// UpdateReservation сливает частичное обновление с текущим состоянием.
// Перенос дат или переход в занимающий статус заново проверяет
// конфликты по объединенному диапазону; при отказе запись не меняется.
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, upd models.ReservationUpdate) (*models.Reservation, error) {
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	wasOccupying := models.IsOccupying(current.Status)
	merged := *current
	if upd.StartDate != nil {
		merged.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		merged.EndDate = *upd.EndDate
	}
	if upd.Type != nil {
		merged.Type = *upd.Type
	}
	if upd.Status != nil {
		merged.Status = *upd.Status
	}
	if upd.TotalPrice != nil {
		merged.TotalPrice = *upd.TotalPrice
	}

	if err := s.validate(&merged); err != nil {
		return nil, err
	}

	// Проверка нужна, если меняются даты занимающей брони или бронь
	// становится занимающей
	needsCheck := models.IsOccupying(merged.Status) && (upd.ChangesDates() || !wasOccupying)
	if needsCheck {
		err = s.store.UpdateReservationWithConflictCheck(ctx, &merged)
	} else {
		err = s.store.UpdateReservation(ctx, &merged)
	}
	if err != nil {
		if errors.Is(err, database.ErrNotAvailable) {
			metrics.IncConflictRejected()
		}
		return nil, err
	}

	eventType := events.EventReservationUpdated
	if merged.Status == models.StatusCancelled && current.Status != models.StatusCancelled {
		eventType = events.EventReservationCancelled
	}
	s.publishEvent(eventType, &merged)
	s.enqueueSync(ctx, "upsert", merged.ID)
	s.invalidateCache(ctx, merged.HotelID)

	return &merged, nil
}

// DeleteReservation жестко удаляет запись. Повторный вызов отдает
// ErrNotFound.
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	r, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteReservation(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventReservationDeleted, r)
	s.enqueueSync(ctx, "remove", id)
	s.invalidateCache(ctx, r.HotelID)

	return nil
}

func (s *ReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	return s.store.ListReservations(ctx, filter)
}

func (s *ReservationService) validate(r *models.Reservation) error {
	if !r.Range().Valid() {
		return fmt.Errorf("%w: end date must be after start date", database.ErrValidation)
	}
	if !models.IsValidType(r.Type) {
		return fmt.Errorf("%w: unknown reservation type %q", database.ErrValidation, r.Type)
	}
	if !models.IsValidStatus(r.Status) {
		return fmt.Errorf("%w: unknown status %q", database.ErrValidation, r.Status)
	}
	if r.TotalPrice < 0 {
		return fmt.Errorf("%w: total price must not be negative", database.ErrValidation)
	}
	if s.maxStayNights > 0 {
		nights := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
		if nights > s.maxStayNights {
			return fmt.Errorf("%w: stay of %d nights exceeds the %d night limit", database.ErrValidation, nights, s.maxStayNights)
		}
	}
	return nil
}

// checkReferences требует существования отеля, номера и гостя, и
// принадлежности номера отелю.
func (s *ReservationService) checkReferences(ctx context.Context, r *models.Reservation) error {
	hotel, err := s.store.GetHotel(ctx, r.HotelID)
	if err != nil {
		return err
	}
	if !hotel.IsActive {
		return fmt.Errorf("%w: hotel %d is deactivated", database.ErrInvalidReference, hotel.ID)
	}

	room, err := s.store.GetRoom(ctx, r.RoomID)
	if err != nil {
		return err
	}
	if room.HotelID != r.HotelID {
		return fmt.Errorf("%w: room %d does not belong to hotel %d", database.ErrInvalidReference, r.RoomID, r.HotelID)
	}

	if _, err := s.store.GetUser(ctx, r.VisitorID); err != nil {
		return err
	}

	return nil
}

func (s *ReservationService) publishEvent(eventType string, r *models.Reservation) {
	if s.eventBus == nil {
		return
	}

	payload := events.ReservationEventPayload{
		ReservationID: r.ID,
		HotelID:       r.HotelID,
		RoomID:        r.RoomID,
		VisitorID:     r.VisitorID,
		StartDate:     r.StartDate.Format(models.DateLayout),
		EndDate:       r.EndDate.Format(models.DateLayout),
		Status:        r.Status,
		TotalPrice:    r.TotalPrice,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("reservation_id", r.ID).Msg("publish event error")
	}
}

func (s *ReservationService) enqueueSync(ctx context.Context, taskType string, reservationID int64) {
	if s.sheetsWorker == nil {
		return
	}
	if err := s.sheetsWorker.EnqueueTask(ctx, taskType, reservationID); err != nil {
		s.logger.Error().Err(err).Int64("reservation_id", reservationID).Str("task", taskType).Msg("sheets enqueue error")
	}
}

func (s *ReservationService) invalidateCache(ctx context.Context, hotelID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateHotel(ctx, hotelID); err != nil {
		s.logger.Error().Err(err).Int64("hotel_id", hotelID).Msg("availability cache invalidation error")
	}
}

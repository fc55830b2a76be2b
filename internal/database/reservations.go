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

const reservationColumns = `id, hotel_id, room_id, visitor_id, date(start_date), date(end_date),
	                 type, status, total_price, created_at, updated_at`

// Запрос пересечений: закрытые интервалы, end включительно.
// Блокируют только статусы confirmed и checked_in.
const conflictCountQuery = `SELECT COUNT(*) FROM reservations
              WHERE room_id = ? AND status IN (?, ?)
              AND date(start_date) <= date(?) AND date(end_date) >= date(?)
              AND id != ?`

// CountConflicts возвращает число занимающих бронирований номера,
// пересекающихся с диапазоном. excludeID исключает собственную запись
// при обновлении (0 — ничего не исключать).
func (db *DB) CountConflicts(ctx context.Context, roomID int64, rng models.DateRange, excludeID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, conflictCountQuery,
		roomID, models.StatusConfirmed, models.StatusCheckedIn,
		rng.End.Format(models.DateLayout), rng.Start.Format(models.DateLayout),
		excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count conflicts: %w", err)
	}
	return count, nil
}

func (db *DB) CreateReservation(ctx context.Context, r *models.Reservation) error {
	query := `INSERT INTO reservations (
				hotel_id, room_id, visitor_id, start_date, end_date,
				type, status, total_price, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		r.HotelID,
		r.RoomID,
		r.VisitorID,
		r.StartDate.Format(models.DateLayout),
		r.EndDate.Format(models.DateLayout),
		r.Type,
		r.Status,
		r.TotalPrice,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now

	return nil
}

// CreateReservationWithLock выполняет проверку конфликтов и вставку в
// одной транзакции, закрывая гонку check-then-act между конкурентными
// create для одного номера.
func (db *DB) CreateReservationWithLock(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var conflicts int
	err = tx.QueryRowContext(ctx, conflictCountQuery,
		r.RoomID, models.StatusConfirmed, models.StatusCheckedIn,
		r.EndDate.Format(models.DateLayout), r.StartDate.Format(models.DateLayout),
		int64(0),
	).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("failed to check conflicts in tx: %w", err)
	}
	if conflicts > 0 {
		return ErrNotAvailable
	}

	query := `INSERT INTO reservations (
				hotel_id, room_id, visitor_id, start_date, end_date,
				type, status, total_price, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, query,
		r.HotelID,
		r.RoomID,
		r.VisitorID,
		r.StartDate.Format(models.DateLayout),
		r.EndDate.Format(models.DateLayout),
		r.Type,
		r.Status,
		r.TotalPrice,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now

	return tx.Commit()
}

func (db *DB) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	r, err := scanReservation(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

// UpdateReservation записывает все изменяемые поля целиком; слияние
// частичного обновления с текущим состоянием делает сервис.
func (db *DB) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	query := `UPDATE reservations SET start_date = ?, end_date = ?, type = ?,
	                 status = ?, total_price = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		r.StartDate.Format(models.DateLayout),
		r.EndDate.Format(models.DateLayout),
		r.Type,
		r.Status,
		r.TotalPrice,
		now,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	r.UpdatedAt = now
	return nil
}

// UpdateReservationWithConflictCheck проверяет объединенный диапазон
// дат (исключая собственную запись) и применяет обновление в одной
// транзакции. Перед проверкой сверяется updated_at: если запись
// изменилась после чтения, возвращается ErrConcurrentModification.
// При любом отказе запись остается нетронутой.
func (db *DB) UpdateReservationWithConflictCheck(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var dbUpdated time.Time
	err = tx.QueryRowContext(ctx, `SELECT updated_at FROM reservations WHERE id = ?`, r.ID).Scan(&dbUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read reservation in tx: %w", err)
	}
	if !dbUpdated.Equal(r.UpdatedAt) {
		return fmt.Errorf("%w: reservation %d", ErrConcurrentModification, r.ID)
	}

	var conflicts int
	err = tx.QueryRowContext(ctx, conflictCountQuery,
		r.RoomID, models.StatusConfirmed, models.StatusCheckedIn,
		r.EndDate.Format(models.DateLayout), r.StartDate.Format(models.DateLayout),
		r.ID,
	).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("failed to check conflicts in tx: %w", err)
	}
	if conflicts > 0 {
		return ErrNotAvailable
	}

	query := `UPDATE reservations SET start_date = ?, end_date = ?, type = ?,
	                 status = ?, total_price = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := tx.ExecContext(ctx, query,
		r.StartDate.Format(models.DateLayout),
		r.EndDate.Format(models.DateLayout),
		r.Type,
		r.Status,
		r.TotalPrice,
		now,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation in tx: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation update: %w", err)
	}
	r.UpdatedAt = now
	return nil
}

// DeleteReservation жестко удаляет бронирование. Повторное удаление
// возвращает ErrNotFound, а не ошибку исполнения.
func (db *DB) DeleteReservation(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReservations возвращает бронирования по фильтру с пагинацией
// skip/limit.
func (db *DB) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	var conds []string
	var args []any

	if filter.HotelID != 0 {
		conds = append(conds, "hotel_id = ?")
		args = append(args, filter.HotelID)
	}
	if filter.RoomID != 0 {
		conds = append(conds, "room_id = ?")
		args = append(args, filter.RoomID)
	}
	if filter.VisitorID != 0 {
		conds = append(conds, "visitor_id = ?")
		args = append(args, filter.VisitorID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		conds = append(conds, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY start_date ASC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Skip)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetOccupyingReservations возвращает занимающие бронирования номера,
// пересекающиеся с диапазоном, для отчетов и диагностики.
func (db *DB) GetOccupyingReservations(ctx context.Context, roomID int64, rng models.DateRange) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
              WHERE room_id = ? AND status IN (?, ?)
              AND date(start_date) <= date(?) AND date(end_date) >= date(?)
              ORDER BY start_date ASC`
	rows, err := db.QueryContext(ctx, query,
		roomID, models.StatusConfirmed, models.StatusCheckedIn,
		rng.End.Format(models.DateLayout), rng.Start.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get occupying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	r := &models.Reservation{}
	var startStr, endStr string
	err := row.Scan(
		&r.ID, &r.HotelID, &r.RoomID, &r.VisitorID, &startStr, &endStr,
		&r.Type, &r.Status, &r.TotalPrice, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.StartDate, err = time.Parse(models.DateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date %s: %w", startStr, err)
	}
	r.EndDate, err = time.Parse(models.DateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date %s: %w", endStr, err)
	}
	return r, nil
}

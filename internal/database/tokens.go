package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const refreshTokenColumns = `id, user_id, token_hash, expires_at, is_active, device_info, created_at`

func (db *DB) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (user_id, token_hash, expires_at, is_active, device_info, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.IsActive,
		token.DeviceInfo,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	token.ID = id
	token.CreatedAt = now
	return nil
}

// FindActiveRefreshToken ищет действующий токен по хэшу: активный и не
// просроченный. userID > 0 дополнительно сужает поиск до владельца.
func (db *DB) FindActiveRefreshToken(ctx context.Context, tokenHash string, userID int64) (*models.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens
              WHERE token_hash = ? AND is_active = 1 AND expires_at > ?`
	args := []any{tokenHash, time.Now()}
	if userID > 0 {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}

	token := &models.RefreshToken{}
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt,
		&token.IsActive, &token.DeviceInfo, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return token, nil
}

// DeactivateRefreshToken гасит один активный токен по хэшу. Возвращает
// false, если подходящей активной записи нет; повторная деактивация не
// возвращает токен к жизни.
func (db *DB) DeactivateRefreshToken(ctx context.Context, tokenHash string, userID int64) (bool, error) {
	query := `UPDATE refresh_tokens SET is_active = 0 WHERE token_hash = ? AND is_active = 1`
	args := []any{tokenHash}
	if userID > 0 {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate refresh token: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeactivateUserRefreshTokens гасит все активные токены пользователя и
// возвращает число затронутых строк (0 — тоже успех).
func (db *DB) DeactivateUserRefreshTokens(ctx context.Context, userID int64) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE refresh_tokens SET is_active = 0 WHERE user_id = ? AND is_active = 1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate user refresh tokens: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// DeleteExpiredRefreshTokens жестко удаляет все строки с истекшим
// expires_at независимо от is_active. Вызывается фоновым воркером.
func (db *DB) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < ?`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/token"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService выпускает пары токенов и гасит refresh при выходе. Любой
// отказ входа отвечает одинаково: ErrInvalidCredentials не сообщает,
// существует ли аккаунт. Refresh не ротируется, токен живет до выхода
// или истечения.
type AuthService struct {
	store  domain.Store
	tokens *token.Manager
	logger *zerolog.Logger
}

func NewAuthService(store domain.Store, tokens *token.Manager, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password, deviceInfo string) (*models.TokenPair, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, database.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, database.ErrInvalidCredentials
	}

	pair, refreshValue, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		UserID:     user.ID,
		TokenHash:  hashToken(refreshValue),
		ExpiresAt:  time.Now().Add(s.tokens.RefreshTTL()),
		IsActive:   true,
		DeviceInfo: deviceInfo,
	}
	if err := s.store.CreateRefreshToken(ctx, record); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUserLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to stamp last login")
	}

	metrics.IncTokensIssued("login")
	s.logger.Info().Int64("user_id", user.ID).Str("device", deviceInfo).Msg("user logged in")
	return pair, nil
}

// Refresh выпускает новый access по действующему refresh. Сам refresh
// возвращается без изменений.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, database.ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, database.ErrInvalidToken
	}

	if _, err := s.store.FindActiveRefreshToken(ctx, hashToken(refreshToken), userID); err != nil {
		return nil, database.ErrInvalidToken
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, database.ErrInvalidToken
	}

	access, err := s.tokens.SignAccess(user.ID, user.Email, user.Role, user.HotelID)
	if err != nil {
		return nil, err
	}

	metrics.IncTokensIssued("refresh")
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Logout гасит один refresh токен. Возвращает false, если токен уже
// неактивен или неизвестен; это не ошибка.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	revoked, err := s.store.DeactivateRefreshToken(ctx, hashToken(refreshToken), 0)
	if err != nil {
		return false, err
	}
	if revoked {
		metrics.IncTokensRevoked()
	}
	return revoked, nil
}

// LogoutAll гасит все активные refresh токены пользователя.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	count, err := s.store.DeactivateUserRefreshTokens(ctx, userID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info().Int64("user_id", userID).Int64("revoked", count).Msg("all sessions revoked")
	}
	return count, nil
}

// ResolveUser превращает access токен в пользователя для middleware.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.tokens.Verify(accessToken, token.TypeAccess)
	if err != nil {
		return nil, database.ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, database.ErrInvalidToken
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, database.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, database.ErrInvalidToken
	}
	return user, nil
}

// SweepExpired жестко удаляет просроченные refresh токены.
func (s *AuthService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteExpiredRefreshTokens(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired refresh tokens swept")
	}
	return deleted, nil
}

func (s *AuthService) issuePair(user *models.User) (*models.TokenPair, string, error) {
	access, err := s.tokens.SignAccess(user.ID, user.Email, user.Role, user.HotelID)
	if err != nil {
		return nil, "", err
	}
	refresh, err := s.tokens.SignRefresh(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, refresh, nil
}

// hashToken: в базе лежит только SHA-256 от значения refresh токена.
func hashToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

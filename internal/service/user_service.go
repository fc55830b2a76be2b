package service

import (
	"context"
	"fmt"
	"strings"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewUserService(store domain.Store, logger *zerolog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Register создает аккаунт с bcrypt-хэшем пароля. Роль admin_hotel
// требует привязки к существующему отелю.
func (s *UserService) Register(ctx context.Context, name, email, password, role string, hotelID int64) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", database.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", database.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", database.ErrValidation)
	}
	if role == "" {
		role = models.RoleViewer
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", database.ErrValidation, role)
	}

	if role == models.RoleAdminHotel {
		if hotelID == 0 {
			return nil, fmt.Errorf("%w: hotel admin requires a hotel", database.ErrValidation)
		}
		if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashed),
		Role:           role,
		HotelID:        hotelID,
		IsActive:       true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", role).Msg("user registered")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.store.ListUsers(ctx, skip, limit)
}

func (s *UserService) SetUserActive(ctx context.Context, id int64, active bool) error {
	return s.store.SetUserActive(ctx, id, active)
}

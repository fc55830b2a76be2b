package domain

import (
	"context"
	"time"

	"hotelier/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Store interface {
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	CreateReservation(ctx context.Context, r *models.Reservation) error
	CreateReservationWithLock(ctx context.Context, r *models.Reservation) error
	UpdateReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservationWithConflictCheck(ctx context.Context, r *models.Reservation) error
	DeleteReservation(ctx context.Context, id int64) error
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error)
	CountConflicts(ctx context.Context, roomID int64, rng models.DateRange, excludeID int64) (int, error)
	GetOccupyingReservations(ctx context.Context, roomID int64, rng models.DateRange) ([]*models.Reservation, error)

	GetHotel(ctx context.Context, id int64) (*models.Hotel, error)
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
	UpdateHotel(ctx context.Context, hotel *models.Hotel) error
	DeactivateHotel(ctx context.Context, id int64) error
	ListHotels(ctx context.Context, skip, limit int, activeOnly bool) ([]*models.Hotel, error)

	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id int64) error
	GetRoomsByHotel(ctx context.Context, hotelID int64, availableOnly bool) ([]*models.Room, error)
	ListRooms(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Room, error)

	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	UpdateUserLastLogin(ctx context.Context, id int64) error
	SetUserActive(ctx context.Context, id int64, active bool) error

	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindActiveRefreshToken(ctx context.Context, tokenHash string, userID int64) (*models.RefreshToken, error)
	DeactivateRefreshToken(ctx context.Context, tokenHash string, userID int64) (bool, error)
	DeactivateUserRefreshTokens(ctx context.Context, userID int64) (int64, error)
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)

	CreateSyncTask(ctx context.Context, task *models.SyncTask) error
	GetPendingSyncTasks(ctx context.Context, limit int) ([]models.SyncTask, error)
	UpdateSyncTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error
}

// AvailabilityCache хранит снимки свободных номеров по отелю и
// диапазону дат. Инвалидация по отелю целиком.
type AvailabilityCache interface {
	GetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, bool, error)
	SetAvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange, rooms []*models.Room, ttl time.Duration) error
	InvalidateHotel(ctx context.Context, hotelID int64) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type SheetsWriter interface {
	UpsertReservation(ctx context.Context, r *models.Reservation) error
	RemoveReservation(ctx context.Context, reservationID int64) error
	ReplaceReservationsSheet(ctx context.Context, reservations []*models.Reservation) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, reservationID int64) error
}

type ReservationService interface {
	CreateReservation(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, upd models.ReservationUpdate) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error)
}

type AvailabilityService interface {
	AvailableRooms(ctx context.Context, hotelID int64, rng models.DateRange) ([]*models.Room, error)
	IsRoomAvailable(ctx context.Context, roomID int64, rng models.DateRange) (bool, error)
	OccupyingReservations(ctx context.Context, roomID int64, rng models.DateRange) ([]*models.Reservation, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password, deviceInfo string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) (bool, error)
	LogoutAll(ctx context.Context, userID int64) (int64, error)
	ResolveUser(ctx context.Context, accessToken string) (*models.User, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type HotelService interface {
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
	GetHotel(ctx context.Context, id int64) (*models.Hotel, error)
	UpdateHotel(ctx context.Context, hotel *models.Hotel) error
	DeactivateHotel(ctx context.Context, id int64) error
	ListHotels(ctx context.Context, skip, limit int, activeOnly bool) ([]*models.Hotel, error)
}

type RoomService interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	ListRooms(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, id int64, upd models.RoomUpdate) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
	RoomsByHotel(ctx context.Context, hotelID int64, availableOnly bool) ([]*models.Room, error)
}

type UserService interface {
	Register(ctx context.Context, name, email, password, role string, hotelID int64) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	SetUserActive(ctx context.Context, id int64, active bool) error
}

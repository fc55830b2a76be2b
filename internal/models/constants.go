package models

// Reservation statuses. Only confirmed and checked_in occupy a room;
// pending, checked_out and cancelled never block new bookings.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

// Reservation types.
const (
	TypeBedBreakfast = "bed_breakfast"
	TypeAllInclusive = "all_inclusive"
	TypeRoomOnly     = "room_only"
)

// Room types.
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomSuite  = "suite"
	RoomFamily = "family"
)

// User roles.
const (
	RoleViewer     = "viewer"
	RoleAdminHotel = "admin_hotel"
	RoleSuperAdmin = "super_admin"
)

const (
	// DateLayout фиксированный формат календарных дат в БД и API
	DateLayout = "2006-01-02"

	// DefaultPageLimit размер пагинации по умолчанию
	DefaultPageLimit = 100

	// MaxPageLimit верхняя граница limit для списочных запросов
	MaxPageLimit = 500

	// AvailabilityCacheTTL время жизни кэша доступности в Redis
	AvailabilityCacheTTL = 5 * 60 // 5 минут в секундах

	// SweepInterval интервал фоновой чистки просроченных refresh-токенов
	SweepInterval = 60 * 60 // 1 час в секундах

	// SyncQueueSize размер очереди воркера синхронизации
	SyncQueueSize = 256
)

// OccupyingStatuses lists the statuses that make a reservation block
// its room for the booked date range.
var OccupyingStatuses = []string{StatusConfirmed, StatusCheckedIn}

// ValidStatuses lists every status accepted on create and update.
// Transition legality is deliberately not enforced.
var ValidStatuses = []string{
	StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled,
}

// ValidTypes lists every accepted reservation type.
var ValidTypes = []string{TypeBedBreakfast, TypeAllInclusive, TypeRoomOnly}

// ValidRoomTypes lists every accepted room type.
var ValidRoomTypes = []string{RoomSingle, RoomDouble, RoomSuite, RoomFamily}

// ValidRoles lists every accepted user role.
var ValidRoles = []string{RoleViewer, RoleAdminHotel, RoleSuperAdmin}

// IsOccupying reports whether a reservation in the given status blocks
// its room.
func IsOccupying(status string) bool {
	return status == StatusConfirmed || status == StatusCheckedIn
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether v is a known reservation status.
func IsValidStatus(v string) bool { return contains(ValidStatuses, v) }

// IsValidType reports whether v is a known reservation type.
func IsValidType(v string) bool { return contains(ValidTypes, v) }

// IsValidRoomType reports whether v is a known room type.
func IsValidRoomType(v string) bool { return contains(ValidRoomTypes, v) }

// IsValidRole reports whether v is a known user role.
func IsValidRole(v string) bool { return contains(ValidRoles, v) }

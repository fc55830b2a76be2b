package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"hotelier/internal/models"
)

// Hotels

func (s *HTTPServer) handleHotels(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		skip, limit := parsePagination(r)
		activeOnly := r.URL.Query().Get("active_only") != "false"
		hotels, err := s.hotels.ListHotels(r.Context(), skip, limit, activeOnly)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
	case http.MethodPost:
		if s.requireSuperAdmin(w, r) == nil {
			return
		}
		var hotel models.Hotel
		if err := decodeJSON(r, &hotel); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.hotels.CreateHotel(r.Context(), &hotel); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, hotel)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleHotelSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/hotels/")
	parts := strings.SplitN(rest, "/", 2)

	id, err := parseID(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(parts) == 1 {
		s.handleHotelByID(w, r, id)
		return
	}

	switch parts[1] {
	case "availability":
		s.handleHotelAvailability(w, r, id)
	case "rooms":
		s.handleHotelRooms(w, r, id)
	case "occupancy-report":
		s.handleOccupancyReport(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleHotelByID(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		hotel, err := s.hotels.GetHotel(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, hotel)
	case http.MethodPut:
		user := s.requireWriter(w, r)
		if user == nil {
			return
		}
		if !canManageHotel(user, id) {
			writeError(w, http.StatusForbidden, "hotel not managed by this account")
			return
		}
		var hotel models.Hotel
		if err := decodeJSON(r, &hotel); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		hotel.ID = id
		if err := s.hotels.UpdateHotel(r.Context(), &hotel); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, hotel)
	case http.MethodDelete:
		if s.requireSuperAdmin(w, r) == nil {
			return
		}
		if err := s.hotels.DeactivateHotel(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deactivated": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleHotelAvailability(w http.ResponseWriter, r *http.Request, hotelID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rooms, err := s.availability.AvailableRooms(r.Context(), hotelID, rng)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hotel_id":        hotelID,
		"start_date":      rng.Start.Format(models.DateLayout),
		"end_date":        rng.End.Format(models.DateLayout),
		"available_rooms": rooms,
	})
}

func (s *HTTPServer) handleHotelRooms(w http.ResponseWriter, r *http.Request, hotelID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	availableOnly := r.URL.Query().Get("available_only") == "true"
	rooms, err := s.rooms.RoomsByHotel(r.Context(), hotelID, availableOnly)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleOccupancyReport(w http.ResponseWriter, r *http.Request, hotelID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exporter == nil {
		writeError(w, http.StatusNotImplemented, "export is not configured")
		return
	}
	user := s.requireWriter(w, r)
	if user == nil {
		return
	}
	if !canManageHotel(user, hotelID) {
		writeError(w, http.StatusForbidden, "hotel not managed by this account")
		return
	}

	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := s.exporter.OccupancyReport(r.Context(), hotelID, rng)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

// Rooms

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		skip, limit := parsePagination(r)
		availableOnly := r.URL.Query().Get("available_only") == "true"
		rooms, err := s.rooms.ListRooms(r.Context(), skip, limit, availableOnly)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
	case http.MethodPost:
		user := s.requireWriter(w, r)
		if user == nil {
			return
		}

		var room models.Room
		if err := decodeJSON(r, &room); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if !canManageHotel(user, room.HotelID) {
			writeError(w, http.StatusForbidden, "hotel not managed by this account")
			return
		}

		if err := s.rooms.CreateRoom(r.Context(), &room); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, room)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleRoomSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/rooms/")
	parts := strings.SplitN(rest, "/", 2)

	id, err := parseID(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(parts) == 2 {
		if parts[1] == "availability" {
			s.handleRoomAvailability(w, r, id)
			return
		}
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		room, err := s.rooms.GetRoom(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
	case http.MethodPut, http.MethodPatch:
		s.updateRoom(w, r, id)
	case http.MethodDelete:
		s.deleteRoom(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleRoomAvailability(w http.ResponseWriter, r *http.Request, roomID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	available, err := s.availability.IsRoomAvailable(r.Context(), roomID, rng)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_id":    roomID,
		"start_date": rng.Start.Format(models.DateLayout),
		"end_date":   rng.End.Format(models.DateLayout),
		"available":  available,
	})
}

func (s *HTTPServer) updateRoom(w http.ResponseWriter, r *http.Request, id int64) {
	user := s.requireWriter(w, r)
	if user == nil {
		return
	}

	existing, err := s.rooms.GetRoom(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if !canManageHotel(user, existing.HotelID) {
		writeError(w, http.StatusForbidden, "hotel not managed by this account")
		return
	}

	var body struct {
		RoomNumber    *string  `json:"room_number"`
		PricePerNight *float64 `json:"price_per_night"`
		Description   *string  `json:"description"`
		Type          *string  `json:"type"`
		MaxOccupancy  *int     `json:"max_occupancy"`
		IsAvailable   *bool    `json:"is_available"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	upd := models.RoomUpdate{
		RoomNumber:    body.RoomNumber,
		PricePerNight: body.PricePerNight,
		Description:   body.Description,
		Type:          body.Type,
		MaxOccupancy:  body.MaxOccupancy,
		IsAvailable:   body.IsAvailable,
	}

	room, err := s.rooms.UpdateRoom(r.Context(), id, upd)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *HTTPServer) deleteRoom(w http.ResponseWriter, r *http.Request, id int64) {
	user := s.requireWriter(w, r)
	if user == nil {
		return
	}

	existing, err := s.rooms.GetRoom(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if !canManageHotel(user, existing.HotelID) {
		writeError(w, http.StatusForbidden, "hotel not managed by this account")
		return
	}

	if err := s.rooms.DeleteRoom(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Users

func (s *HTTPServer) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.requireSuperAdmin(w, r) == nil {
			return
		}
		skip, limit := parsePagination(r)
		users, err := s.users.ListUsers(r.Context(), skip, limit)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users})
	case http.MethodPost:
		if s.requireSuperAdmin(w, r) == nil {
			return
		}
		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
			HotelID  int64  `json:"hotel_id"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		user, err := s.users.Register(r.Context(), body.Name, body.Email, body.Password, body.Role, body.HotelID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/api/v1/users/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		viewer := currentUser(r)
		if viewer == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		// Обычный пользователь видит только себя.
		if viewer.Role != models.RoleSuperAdmin && viewer.ID != id {
			writeError(w, http.StatusForbidden, "insufficient role")
			return
		}
		user, err := s.users.GetUser(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if s.requireSuperAdmin(w, r) == nil {
			return
		}
		if err := s.users.SetUserActive(r.Context(), id, false); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deactivated": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

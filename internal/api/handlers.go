package api

import (
	"net/http"
	"strings"

	"hotelier/internal/models"
)

// Auth

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		DeviceInfo string `json:"device_info"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pair, err := s.auth.Login(r.Context(), body.Email, body.Password, body.DeviceInfo)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pair, err := s.auth.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	revoked, err := s.auth.Logout(r.Context(), body.RefreshToken)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"revoked": revoked})
}

func (s *HTTPServer) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user := currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	count, err := s.auth.LogoutAll(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"revoked_count": count})
}

// Reservations

type reservationRequest struct {
	HotelID    int64   `json:"hotel_id"`
	RoomID     int64   `json:"room_id"`
	VisitorID  int64   `json:"visitor_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReservations(w, r)
	case http.MethodPost:
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, limit := parsePagination(r)

	filter := models.ReservationFilter{Skip: skip, Limit: limit}
	if raw := q.Get("hotel_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.HotelID = id
	}
	if raw := q.Get("room_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.RoomID = id
	}
	if raw := q.Get("visitor_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.VisitorID = id
	}
	for _, status := range strings.Split(q.Get("status"), ",") {
		if status = strings.TrimSpace(status); status != "" {
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	reservations, err := s.reservations.ListReservations(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (s *HTTPServer) createReservation(w http.ResponseWriter, r *http.Request) {
	user := s.requireWriter(w, r)
	if user == nil {
		return
	}

	var body reservationRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !canManageHotel(user, body.HotelID) {
		writeError(w, http.StatusForbidden, "hotel not managed by this account")
		return
	}

	rng, err := models.NewDateRange(body.StartDate, body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reservation := &models.Reservation{
		HotelID:    body.HotelID,
		RoomID:     body.RoomID,
		VisitorID:  body.VisitorID,
		StartDate:  rng.Start,
		EndDate:    rng.End,
		Type:       body.Type,
		Status:     body.Status,
		TotalPrice: body.TotalPrice,
	}

	created, err := s.reservations.CreateReservation(r.Context(), reservation)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/api/v1/reservations/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		reservation, err := s.reservations.GetReservation(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, reservation)
	case http.MethodPut, http.MethodPatch:
		s.updateReservation(w, r, id)
	case http.MethodDelete:
		s.deleteReservation(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) updateReservation(w http.ResponseWriter, r *http.Request, id int64) {
	user := s.requireWriter(w, r)
	if user == nil {
		return
	}

	existing, err := s.reservations.GetReservation(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if !canManageHotel(user, existing.HotelID) {
		writeError(w, http.StatusForbidden, "hotel not managed by this account")
		return
	}

	var body struct {
		StartDate  *string  `json:"start_date"`
		EndDate    *string  `json:"end_date"`
		Type       *string  `json:"type"`
		Status     *string  `json:"status"`
		TotalPrice *float64 `json:"total_price"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	upd := models.ReservationUpdate{
		Type:       body.Type,
		Status:     body.Status,
		TotalPrice: body.TotalPrice,
	}
	if body.StartDate != nil {
		start, err := models.ParseDate(*body.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.StartDate = &start
	}
	if body.EndDate != nil {
		end, err := models.ParseDate(*body.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.EndDate = &end
	}

	updated, err := s.reservations.UpdateReservation(r.Context(), id, upd)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) deleteReservation(w http.ResponseWriter, r *http.Request, id int64) {
	user := s.requireWriter(w, r)
	if user == nil {
		return
	}

	existing, err := s.reservations.GetReservation(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if !canManageHotel(user, existing.HotelID) {
		writeError(w, http.StatusForbidden, "hotel not managed by this account")
		return
	}

	if err := s.reservations.DeleteReservation(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

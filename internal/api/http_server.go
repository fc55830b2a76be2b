package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
)

// ReportExporter generates occupancy reports on demand.
type ReportExporter interface {
	OccupancyReport(ctx context.Context, hotelID int64, rng models.DateRange) (string, error)
}

// HTTPServer exposes the REST API for reservations, availability and auth.
type HTTPServer struct {
	cfg    config.APIConfig
	server *http.Server
	log    zerolog.Logger

	auth         domain.AuthService
	reservations domain.ReservationService
	availability domain.AvailabilityService
	hotels       domain.HotelService
	rooms        domain.RoomService
	users        domain.UserService
	exporter     ReportExporter

	limiter *rateLimiter
}

type Deps struct {
	Auth         domain.AuthService
	Reservations domain.ReservationService
	Availability domain.AvailabilityService
	Hotels       domain.HotelService
	Rooms        domain.RoomService
	Users        domain.UserService
	Exporter     ReportExporter
}

func NewHTTPServer(cfg config.APIConfig, deps Deps, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:          cfg,
		log:          logger.With().Str("component", "api").Logger(),
		auth:         deps.Auth,
		reservations: deps.Reservations,
		availability: deps.Availability,
		hotels:       deps.Hotels,
		rooms:        deps.Rooms,
		users:        deps.Users,
		exporter:     deps.Exporter,
		limiter:      newRateLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/api/v1/auth/login", srv.handleLogin)
	mux.HandleFunc("/api/v1/auth/refresh", srv.handleRefresh)
	mux.HandleFunc("/api/v1/auth/logout", srv.handleLogout)
	mux.HandleFunc("/api/v1/auth/logout-all", srv.handleLogoutAll)
	mux.HandleFunc("/api/v1/reservations", srv.handleReservations)
	mux.HandleFunc("/api/v1/reservations/", srv.handleReservationByID)
	mux.HandleFunc("/api/v1/hotels", srv.handleHotels)
	mux.HandleFunc("/api/v1/hotels/", srv.handleHotelSubtree)
	mux.HandleFunc("/api/v1/rooms", srv.handleRooms)
	mux.HandleFunc("/api/v1/rooms/", srv.handleRoomSubtree)
	mux.HandleFunc("/api/v1/users", srv.handleUsers)
	mux.HandleFunc("/api/v1/users/", srv.handleUserByID)

	handler := srv.requestIDMiddleware(srv.loggingMiddleware(srv.rateLimitMiddleware(srv.authMiddleware(mux))))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the root handler, wired with all middleware.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Middleware

func (s *HTTPServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		endpoint := normalizePath(r.URL.Path)
		metrics.IncHTTP(endpoint, strconv.Itoa(recorder.status))

		reqID, _ := r.Context().Value(requestIDKey{}).(string)
		s.log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *HTTPServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(r) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

var numericSegment = regexp.MustCompile(`/\d+`)

// normalizePath collapses numeric path segments to keep metric
// cardinality bounded.
func normalizePath(path string) string {
	return numericSegment.ReplaceAllString(path, "/:id")
}

// Helpers

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps store sentinels onto stable HTTP statuses.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, database.ErrInvalidCredentials), errors.Is(err, database.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrNotAvailable),
		errors.Is(err, database.ErrAlreadyExists),
		errors.Is(err, database.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, database.ErrInvalidReference):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", raw)
	}
	return id, nil
}

// parseDateRange reads start_date and end_date query params.
func parseDateRange(r *http.Request) (models.DateRange, error) {
	start, err := models.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		return models.DateRange{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := models.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		return models.DateRange{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return models.DateRange{Start: start, End: end}, nil
}

func parsePagination(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > models.MaxPageLimit {
		limit = models.DefaultPageLimit
	}
	return skip, limit
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

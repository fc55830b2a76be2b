package api

import (
	"context"
	"net/http"
	"strings"

	"hotelier/internal/models"
)

type userKey struct{}

// publicPaths are reachable without a bearer token. Logout is public on
// purpose: it authenticates by the refresh token in the body.
var publicPaths = map[string]bool{
	"/healthz":             true,
	"/api/v1/auth/login":   true,
	"/api/v1/auth/refresh": true,
	"/api/v1/auth/logout":  true,
	"/metrics":             true,
}

func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := s.auth.ResolveUser(r.Context(), token)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// currentUser returns the authenticated user stored by authMiddleware.
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey{}).(*models.User)
	return user
}

// requireWriter rejects viewers. Hotel admins and super admins pass.
func (s *HTTPServer) requireWriter(w http.ResponseWriter, r *http.Request) *models.User {
	user := currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	if user.Role != models.RoleAdminHotel && user.Role != models.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "insufficient role")
		return nil
	}
	return user
}

// requireSuperAdmin gates user management.
func (s *HTTPServer) requireSuperAdmin(w http.ResponseWriter, r *http.Request) *models.User {
	user := currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	if user.Role != models.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "insufficient role")
		return nil
	}
	return user
}

// canManageHotel scopes hotel admins to their own hotel.
func canManageHotel(user *models.User, hotelID int64) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleSuperAdmin {
		return true
	}
	return user.Role == models.RoleAdminHotel && user.HotelID == hotelID
}

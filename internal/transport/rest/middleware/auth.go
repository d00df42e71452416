package middleware

import (
	"context"
	"net/http"
	"strings"

	"formflow/internal/service"
)

type contextKey string

const (
	OrganizerIDKey    contextKey = "organizerId"
	RegistrationIDKey contextKey = "registrationId"
	FormIDKey         contextKey = "formId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireOrganizer validates organizer JWT from Authorization header
func (m *AuthMiddleware) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			// Try query param for WebSocket
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateOrganizerToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), OrganizerIDKey, claims.OrganizerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRegistrant validates registrant JWT from Authorization header or query param
func (m *AuthMiddleware) RequireRegistrant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			// Try query param for WebSocket
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateRegistrantToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RegistrationIDKey, claims.RegistrationID)
		ctx = context.WithValue(ctx, FormIDKey, claims.FormID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOrganizerID extracts organizer ID from context
func GetOrganizerID(ctx context.Context) string {
	if v := ctx.Value(OrganizerIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetRegistrationID extracts registration ID from context
func GetRegistrationID(ctx context.Context) string {
	if v := ctx.Value(RegistrationIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetFormID extracts form ID from context
func GetFormID(ctx context.Context) string {
	if v := ctx.Value(FormIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

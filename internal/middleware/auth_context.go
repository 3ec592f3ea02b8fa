package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/ports/auth"
	"pet-grooming-agenda/internal/session"
)

const (
	DebugUserHeader  = "X-Debug-User-ID"
	DebugEmailHeader = "X-Debug-Email"
)

// RoleResolver devuelve el rol guardado en el perfil (CLIENT si no existe).
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (session.Role, error)
}

// AuthContext arma la sesión del request:
// - Si verifier != nil y viene Bearer token => Verify() y rol desde el perfil.
// - Si verifier == nil => modo dev: header X-Debug-User-ID.
// - Sin claims el request sigue anónimo; los handlers deciden 401.
func AuthContext(verifier auth.AuthVerifier, roles RoleResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, verifier, logger)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			role, err := roles.RoleOf(r.Context(), claims.UserID)
			if err != nil {
				logger.ErrorContext(r.Context(), "resolve role failed",
					"user_id", claims.UserID,
					"request_id", chimw.GetReqID(r.Context()),
					"err", err,
				)
				httpx.Internal(w)
				return
			}

			ctx := session.WithSession(r.Context(), session.Session{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier, logger *slog.Logger) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid, Email: strings.TrimSpace(r.Header.Get(DebugEmailHeader))}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		// no cortamos acá: el handler decide 401
		logger.DebugContext(r.Context(), "token rejected", "err", err)
		return auth.Claims{}, false
	}
	return claims, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth corta con 401 si no hay sesión.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			httpx.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin: 401 sin sesión, 403 si el rol no es ADMIN.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}
		if !sess.IsAdmin() {
			httpx.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package profiles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/session"
)

// RegisterSessionRoutes monta /session. El token lo emite el proveedor de identidad;
// aquí solo se resuelve perfil, rol y pantalla inicial.
func RegisterSessionRoutes(r chi.Router, svc *Service, logger *slog.Logger) {
	r.Post("/session", startSessionHandler(svc, logger))
	r.Get("/session", currentSessionHandler(svc, logger))
	r.Delete("/session", endSessionHandler())
}

type screenResponse struct {
	Name    string            `json:"name"`
	Payload map[string]string `json:"payload,omitempty"`
}

type sessionResponse struct {
	UserID  string           `json:"user_id"`
	Email   string           `json:"email,omitempty"`
	Role    string           `json:"role"`
	Created bool             `json:"created"`
	Profile *profileResponse `json:"profile"`
	Landing screenResponse   `json:"landing"`
}

func screenOf(sc session.Screen) screenResponse {
	return screenResponse{Name: sc.Name(), Payload: session.Payload(sc)}
}

// startSessionHandler godoc
// @Summary  Sign-in: crea el perfil la primera vez y devuelve la pantalla inicial
// @Tags     session
// @Produce  json
// @Router   /session [post]
func startSessionHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		p, created, err := svc.EnsureOnSignIn(r.Context(), sess.UserID)
		if err != nil {
			httpx.ServerError(w, r, logger, "ensure profile on sign-in failed", err)
			return
		}

		// el rol del middleware puede venir de antes de crear el perfil
		sess.Role = p.Role
		resp := toResponse(p)
		httpx.WriteJSON(w, http.StatusOK, sessionResponse{
			UserID:  sess.UserID,
			Email:   sess.Email,
			Role:    string(sess.Role),
			Created: created,
			Profile: &resp,
			Landing: screenOf(session.Landing(&sess)),
		})
	}
}

func currentSessionHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		p, found, err := svc.Get(r.Context(), sess.UserID)
		if err != nil {
			httpx.ServerError(w, r, logger, "load session profile failed", err)
			return
		}

		out := sessionResponse{
			UserID:  sess.UserID,
			Email:   sess.Email,
			Role:    string(sess.Role),
			Landing: screenOf(session.Landing(&sess)),
		}
		if found {
			resp := toResponse(p)
			out.Profile = &resp
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func endSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"landing": screenOf(session.Landing(nil)),
		})
	}
}

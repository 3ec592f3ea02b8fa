package profiles

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/ports/blobstore"
	"pet-grooming-agenda/internal/session"
)

// RegisterRoutes monta /me/profile. maxUpload es el tope de la imagen de avatar.
func RegisterRoutes(r chi.Router, svc *Service, maxUpload int64, logger *slog.Logger) {
	r.Route("/me/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc, logger))
		pr.Put("/", updateProfileHandler(svc, logger))
		pr.Post("/avatar", uploadAvatarHandler(svc, logger, maxUpload))
	})
}

type profileResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AvatarURL    string    `json:"avatar_url"`
	Role         string    `json:"role"`
	Address      string    `json:"address"`
	Neighborhood string    `json:"neighborhood"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type updateProfileRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,max=120"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	Address      *string `json:"address" validate:"omitempty,max=200"`
	Neighborhood *string `json:"neighborhood" validate:"omitempty,max=120"`
}

// getProfileHandler godoc
// @Summary  Perfil del usuario actual
// @Tags     profile
// @Produce  json
// @Success  200 {object} map[string]any
// @Failure  401 {object} map[string]any
// @Router   /me/profile [get]
func getProfileHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		p, found, err := svc.Get(r.Context(), sess.UserID)
		if err != nil {
			httpx.ServerError(w, r, logger, "get profile failed", err)
			return
		}
		// Sin perfil no es error: el cliente muestra el formulario vacío.
		if !found {
			httpx.WriteJSON(w, http.StatusOK, map[string]any{"profile": nil})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"profile": toResponse(p)})
	}
}

// updateProfileHandler godoc
// @Summary  Crea o actualiza el perfil
// @Tags     profile
// @Accept   json
// @Produce  json
// @Router   /me/profile [put]
func updateProfileHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		var req updateProfileRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}

		p, err := svc.Update(r.Context(), sess.UserID, UpdateInput{
			FullName:     req.FullName,
			Phone:        req.Phone,
			Address:      req.Address,
			Neighborhood: req.Neighborhood,
		})
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(p))
	}
}

// uploadAvatarHandler godoc
// @Summary  Sube el avatar (multipart, campo "file")
// @Tags     profile
// @Accept   multipart/form-data
// @Produce  json
// @Router   /me/profile/avatar [post]
func uploadAvatarHandler(svc *Service, logger *slog.Logger, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		name, data, err := httpx.ReadUpload(w, r, "file", maxUpload)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		p, err := svc.SetAvatar(r.Context(), sess.UserID, name, data)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(p))
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, httpx.ErrInvalidBody):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, blobstore.ErrNotAnImage):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA", err.Error())
	case errors.Is(err, httpx.ErrUploadTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w, "profile")
	default:
		httpx.ServerError(w, r, logger, "profile request failed", err)
	}
}

func toResponse(p Profile) profileResponse {
	return profileResponse{
		ID:           p.ID,
		FullName:     p.FullName,
		Phone:        p.Phone,
		AvatarURL:    p.AvatarURL,
		Role:         string(p.Role),
		Address:      p.Address,
		Neighborhood: p.Neighborhood,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

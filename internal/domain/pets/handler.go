package pets

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

func RegisterRoutes(r chi.Router, svc *Service, maxUpload int64, logger *slog.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, logger))
		pr.Get("/", listPetsHandler(svc, logger))

		// Todo lo de abajo es solo del dueño
		pr.Get("/{petID}", getPetHandler(svc, logger))
		pr.Patch("/{petID}", updatePetHandler(svc, logger))
		pr.Delete("/{petID}", deletePetHandler(svc, logger))
		pr.Post("/{petID}/image", uploadPetImageHandler(svc, logger, maxUpload))
	})
}

type createPetRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Breed string `json:"breed" validate:"max=80"`
	Age   string `json:"age" validate:"max=40"`
	Type  string `json:"type" validate:"required,oneof=dog cat other"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name  *string `json:"name" validate:"omitempty,max=80"`
	Breed *string `json:"breed" validate:"omitempty,max=80"`
	Age   *string `json:"age" validate:"omitempty,max=40"`
	Type  *string `json:"type" validate:"omitempty,oneof=dog cat other"`
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Type        Type      `json:"type"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary  Registra una mascota
// @Tags     pets
// @Accept   json
// @Produce  json
// @Router   /pets [post]
func createPetHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}

		p, err := svc.Create(r.Context(), sess.UserID, CreateInput{
			Name:  req.Name,
			Breed: req.Breed,
			Age:   req.Age,
			Type:  req.Type,
		})
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary  Mascotas del usuario (más nuevas primero)
// @Tags     pets
// @Produce  json
// @Router   /pets [get]
func listPetsHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		items, err := svc.ListByOwner(r.Context(), sess.UserID)
		if err != nil {
			httpx.ServerError(w, r, logger, "list pets failed", err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), sess.UserID)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		var req updatePetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), sess.UserID, UpdateInput{
			Name:  req.Name,
			Breed: req.Breed,
			Age:   req.Age,
			Type:  req.Type,
		})
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), sess.UserID); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.NoContent(w)
	}
}

// uploadPetImageHandler godoc
// @Summary  Sube la foto de la mascota (multipart, campo "file")
// @Tags     pets
// @Accept   multipart/form-data
// @Produce  json
// @Router   /pets/{petID}/image [post]
func uploadPetImageHandler(svc *Service, logger *slog.Logger, maxUpload int64) http.HandlerFunc {
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

		p, err := svc.SetImage(r.Context(), chi.URLParam(r, "petID"), sess.UserID, name, data)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, httpx.ErrInvalidBody):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w, "pet")
	case errors.Is(err, ErrForbidden):
		httpx.Forbidden(w)
	case errors.Is(err, blobstore.ErrNotAnImage):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA", err.Error())
	case errors.Is(err, httpx.ErrUploadTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error())
	default:
		httpx.ServerError(w, r, logger, "pets request failed", err)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Type:        p.Type,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

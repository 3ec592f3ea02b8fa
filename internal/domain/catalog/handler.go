package catalog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/ports/blobstore"
)

// RegisterRoutes monta la lectura pública del catálogo.
func RegisterRoutes(r chi.Router, c *Catalog, logger *slog.Logger) {
	r.Get("/services", listServicesHandler(c, logger))
	r.Get("/services/{serviceID}", getServiceHandler(c, logger))
}

// RegisterAdminRoutes espera un router ya protegido con RequireAdmin.
func RegisterAdminRoutes(r chi.Router, c *Catalog, maxUpload int64, logger *slog.Logger) {
	r.Route("/services", func(ar chi.Router) {
		ar.Post("/", createServiceHandler(c, logger))
		ar.Patch("/{serviceID}", updateServiceHandler(c, logger))
		ar.Delete("/{serviceID}", deleteServiceHandler(c, logger))
		ar.Post("/{serviceID}/image", uploadServiceImageHandler(c, logger, maxUpload))
	})
}

type createServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    string  `json:"duration" validate:"max=40"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
}

type updateServiceRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *string  `json:"duration" validate:"omitempty,max=40"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

type serviceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listServicesHandler godoc
// @Summary  Catálogo de servicios (orden por nombre)
// @Tags     services
// @Produce  json
// @Router   /services [get]
func listServicesHandler(c *Catalog, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := c.List(r.Context())
		if err != nil {
			httpx.ServerError(w, r, logger, "list services failed", err)
			return
		}
		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toServiceResponse(s))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getServiceHandler(c *Catalog, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := c.Get(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

// createServiceHandler godoc
// @Summary  Alta de servicio (admin)
// @Tags     admin
// @Accept   json
// @Produce  json
// @Router   /admin/services [post]
func createServiceHandler(c *Catalog, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createServiceRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}

		s, err := c.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Duration:    req.Duration,
			Rating:      req.Rating,
		})
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toServiceResponse(s))
	}
}

func updateServiceHandler(c *Catalog, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateServiceRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}

		s, err := c.Update(r.Context(), chi.URLParam(r, "serviceID"), UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Duration:    req.Duration,
			Rating:      req.Rating,
		})
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func deleteServiceHandler(c *Catalog, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.Delete(r.Context(), chi.URLParam(r, "serviceID")); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.NoContent(w)
	}
}

func uploadServiceImageHandler(c *Catalog, logger *slog.Logger, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, data, err := httpx.ReadUpload(w, r, "file", maxUpload)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		s, err := c.SetImage(r.Context(), chi.URLParam(r, "serviceID"), name, data)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, httpx.ErrInvalidBody):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w, "service")
	case errors.Is(err, blobstore.ErrNotAnImage):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA", err.Error())
	case errors.Is(err, httpx.ErrUploadTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error())
	default:
		httpx.ServerError(w, r, logger, "services request failed", err)
	}
}

func toServiceResponse(s Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		ImageURL:    s.ImageURL,
		Rating:      s.Rating,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

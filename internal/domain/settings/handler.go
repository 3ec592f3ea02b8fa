package settings

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/platform/httpx"
)

const maxSettingBody = 64 << 10

// RegisterAdminRoutes espera un router ya protegido con RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, logger *slog.Logger) {
	r.Get("/settings/{category}", getSettingHandler(svc, logger))
	r.Put("/settings/{category}", putSettingHandler(svc, logger))
}

// getSettingHandler godoc
// @Summary  Lee una categoría de ajustes (default si nunca se guardó)
// @Tags     admin
// @Produce  json
// @Param    category path string true "notifications | business_hours | payment_methods"
// @Router   /admin/settings/{category} [get]
func getSettingHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := ParseCategory(chi.URLParam(r, "category"))
		if !ok {
			httpx.NotFound(w, "settings category")
			return
		}
		v, err := svc.Get(r.Context(), c)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"category": c, "value": v})
	}
}

// putSettingHandler godoc
// @Summary  Guarda una categoría de ajustes (upsert)
// @Tags     admin
// @Accept   json
// @Produce  json
// @Router   /admin/settings/{category} [put]
func putSettingHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := ParseCategory(chi.URLParam(r, "category"))
		if !ok {
			httpx.NotFound(w, "settings category")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxSettingBody))
		if err != nil {
			httpx.BadRequest(w, "invalid body")
			return
		}

		v, err := svc.Upsert(r.Context(), c, json.RawMessage(body))
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"category": c, "value": v})
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, ErrUnknownCategory):
		httpx.NotFound(w, "settings category")
	default:
		httpx.ServerError(w, r, logger, "settings request failed", err)
	}
}

package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-grooming-agenda/internal/platform/httpx"
)

// RegisterAdminRoutes espera un router ya protegido con RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, logger *slog.Logger) {
	r.Get("/dashboard", dashboardHandler(svc, logger))
	r.Get("/reports/financial", financialHandler(svc, logger))
}

// dashboardHandler godoc
// @Summary  Números del día para el admin
// @Tags     admin
// @Produce  json
// @Success  200 {object} Daily
// @Router   /admin/dashboard [get]
func dashboardHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			logger.ErrorContext(r.Context(), "dashboard stats failed",
				"request_id", chimw.GetReqID(r.Context()), "err", err)
			httpx.Internal(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, d)
	}
}

// financialHandler godoc
// @Summary  Reporte financiero del mes actual vs el anterior
// @Tags     admin
// @Produce  json
// @Success  200 {object} Monthly
// @Router   /admin/reports/financial [get]
func financialHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Financial(r.Context())
		if err != nil {
			logger.ErrorContext(r.Context(), "financial stats failed",
				"request_id", chimw.GetReqID(r.Context()), "err", err)
			httpx.Internal(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

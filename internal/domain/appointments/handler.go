package appointments

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/activity"
	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/session"
)

// RegisterRoutes monta las rutas del cliente (/appointments).
func RegisterRoutes(r chi.Router, svc *Service, logger *slog.Logger) {
	h := handlers{svc: svc, logger: logger}
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", h.list)
		ar.Post("/", h.create)
		ar.Get("/{id}", h.get)
		ar.Patch("/{id}", h.reschedule)
		ar.Delete("/{id}", h.remove)
		ar.Get("/{id}/activity", h.activityLog)
	})
}

// RegisterAdminRoutes espera un router ya protegido con RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, logger *slog.Logger) {
	h := handlers{svc: svc, logger: logger}
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", h.agenda)
		ar.Patch("/{id}/status", h.setStatus)
		ar.Delete("/{id}", h.remove)
	})
}

type handlers struct {
	svc    *Service
	logger *slog.Logger
}

type createAppointmentRequest struct {
	PetID     string `json:"pet_id" validate:"required"`
	ServiceID string `json:"service_id" validate:"required"`
	Date      string `json:"scheduled_date" validate:"required"`
	Time      string `json:"scheduled_time" validate:"required"`
	Notes     string `json:"notes" validate:"max=500"`
}

type rescheduleRequest struct {
	PetID     *string `json:"pet_id"`
	ServiceID *string `json:"service_id"`
	Date      *string `json:"scheduled_date"`
	Time      *string `json:"scheduled_time"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type petSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Breed    string `json:"breed"`
	ImageURL string `json:"image_url"`
}

type serviceSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"`
}

type ownerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type appointmentResponse struct {
	ID          string          `json:"id"`
	OwnerUserID string          `json:"owner_user_id"`
	PetID       string          `json:"pet_id"`
	ServiceID   string          `json:"service_id"`
	Date        string          `json:"scheduled_date"`
	Time        string          `json:"scheduled_time"`
	Status      Status          `json:"status"`
	Notes       string          `json:"notes"`
	Modifiable  bool            `json:"modifiable"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Pet         *petSummary     `json:"pet,omitempty"`
	Service     *serviceSummary `json:"service,omitempty"`
	Owner       *ownerSummary   `json:"owner,omitempty"`
}

type activityResponse struct {
	ID         string         `json:"id"`
	Type       activity.Type  `json:"type"`
	ActorID    string         `json:"actor_id"`
	ActorRole  string         `json:"actor_role"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// list godoc
// @Summary  Turnos del usuario
// @Tags     appointments
// @Produce  json
// @Param    view query string false "upcoming | history | modifiable | all"
// @Router   /appointments [get]
func (h handlers) list(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	view, ok := ParseView(r.URL.Query().Get("view"))
	if !ok {
		httpx.BadRequest(w, "view must be upcoming, history, modifiable or all")
		return
	}

	agenda, err := h.svc.ListForOwner(r.Context(), sess, view)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch view {
	case ViewModifiable:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"modifiable": toResponses(agenda.Upcoming)})
	case ViewUpcoming:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"upcoming": toResponses(agenda.Upcoming)})
	case ViewHistory:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"history": toResponses(agenda.History)})
	default:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"upcoming": toResponses(agenda.Upcoming),
			"history":  toResponses(agenda.History),
		})
	}
}

// create godoc
// @Summary  Reserva un turno (queda PENDING)
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Router   /appointments [post]
func (h handlers) create(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req createAppointmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	a, err := h.svc.Book(r.Context(), sess, BookInput{
		PetID:     req.PetID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), sess, a.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(d))
}

func (h handlers) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	d, err := h.svc.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(d))
}

// reschedule godoc
// @Summary  Edita fecha, hora, mascota, servicio o notas de un turno propio
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Router   /appointments/{id} [patch]
func (h handlers) reschedule(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req rescheduleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	a, err := h.svc.Reschedule(r.Context(), sess, chi.URLParam(r, "id"), RescheduleInput{
		PetID:     req.PetID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), sess, a.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(d))
}

func (h handlers) remove(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	if err := h.svc.Remove(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.NoContent(w)
}

func (h handlers) activityLog(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	entries, err := h.svc.Activity(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, activityResponse{
			ID:         e.ID,
			Type:       e.Type,
			ActorID:    e.Actor.ID,
			ActorRole:  string(e.Actor.Role),
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// agenda godoc
// @Summary  Agenda de admin
// @Tags     admin
// @Produce  json
// @Param    date   query string false "YYYY-MM-DD"
// @Param    status query string false "ALL | PENDING | CONFIRMED | COMPLETED | CANCELED"
// @Router   /admin/appointments [get]
func (h handlers) agenda(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	q := r.URL.Query()
	res, err := h.svc.Agenda(r.Context(), sess, AgendaFilter{
		Date:   q.Get("date"),
		Status: q.Get("status"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"items":         toResponses(res.Items),
		"pending_count": res.PendingCount,
	})
}

// setStatus godoc
// @Summary  Confirma, rechaza o completa un turno
// @Tags     admin
// @Accept   json
// @Produce  json
// @Router   /admin/appointments/{id}/status [patch]
func (h handlers) setStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req setStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}
	to, err := ParseStatus(req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	a, err := h.svc.SetStatus(r.Context(), sess, chi.URLParam(r, "id"), to)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(Details{Appointment: a}))
}

func (h handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.Forbidden(w)
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w, "appointment")
	case errors.Is(err, ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrNotModifiable):
		httpx.WriteError(w, http.StatusConflict, "NOT_MODIFIABLE", err.Error())
	case errors.Is(err, ErrStale):
		httpx.WriteError(w, http.StatusConflict, "STALE", err.Error())
	default:
		if h.logger != nil {
			h.logger.ErrorContext(r.Context(), "appointments request failed",
				"method", r.Method, "path", r.URL.Path,
				"request_id", chimw.GetReqID(r.Context()), "err", err)
		}
		httpx.Internal(w)
	}
}

func toResponses(items []Details) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toResponse(d))
	}
	return out
}

func toResponse(d Details) appointmentResponse {
	out := appointmentResponse{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		PetID:       d.PetID,
		ServiceID:   d.ServiceID,
		Date:        d.Date,
		Time:        d.Time,
		Status:      d.Status,
		Notes:       d.Notes,
		Modifiable:  d.Status.Modifiable(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Pet != nil {
		out.Pet = &petSummary{
			ID:       d.Pet.ID,
			Name:     d.Pet.Name,
			Type:     string(d.Pet.Type),
			Breed:    d.Pet.Breed,
			ImageURL: d.Pet.ImageURL,
		}
	}
	if d.Service != nil {
		out.Service = &serviceSummary{
			ID:       d.Service.ID,
			Name:     d.Service.Name,
			Price:    d.Service.Price,
			Duration: d.Service.Duration,
		}
	}
	if d.Owner != nil {
		out.Owner = &ownerSummary{
			ID:       d.Owner.ID,
			FullName: d.Owner.FullName,
			Phone:    d.Owner.Phone,
		}
	}
	return out
}

package appointments

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/activity"
	"pet-grooming-agenda/internal/domain/catalog"
	"pet-grooming-agenda/internal/domain/pets"
	"pet-grooming-agenda/internal/domain/profiles"
	"pet-grooming-agenda/internal/session"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("appointment not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotModifiable     = errors.New("appointment is no longer modifiable")
	// ErrStale: el estado cambió entre la lectura y la escritura.
	ErrStale = errors.New("appointment changed concurrently")
)

// Lookups que el servicio usa para validar referencias y enriquecer listados.
type PetDirectory interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	LookupMany(ctx context.Context, ids []string) (map[string]pets.Pet, error)
}

type ServiceDirectory interface {
	Get(ctx context.Context, id string) (catalog.Service, error)
	LookupMany(ctx context.Context, ids []string) (map[string]catalog.Service, error)
}

type ProfileDirectory interface {
	LookupMany(ctx context.Context, ids []string) (map[string]profiles.Profile, error)
}

type Recorder interface {
	Record(ctx context.Context, e activity.Entry) (activity.Entry, error)
	List(ctx context.Context, appointmentID string) ([]activity.Entry, error)
}

type Deps struct {
	Repo     Repository
	Pets     PetDirectory
	Services ServiceDirectory
	Profiles ProfileDirectory
	Activity Recorder // opcional

	Location *time.Location // zona del negocio; nil = UTC
	Logger   *slog.Logger
}

type Service struct {
	repo     Repository
	pets     PetDirectory
	services ServiceDirectory
	profiles ProfileDirectory
	activity Recorder

	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

func NewService(d Deps) *Service {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     d.Repo,
		pets:     d.Pets,
		services: d.Services,
		profiles: d.Profiles,
		activity: d.Activity,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Today es la fecha actual en la zona del negocio.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(DateLayout)
}

// -------------------------
// Cliente
// -------------------------

type BookInput struct {
	PetID     string
	ServiceID string
	Date      string
	Time      string
	Notes     string
}

// Book crea el turno en PENDING. La mascota tiene que ser del usuario y el servicio existir.
func (s *Service) Book(ctx context.Context, sess session.Session, in BookInput) (Appointment, error) {
	if strings.TrimSpace(sess.UserID) == "" {
		return Appointment{}, ErrForbidden
	}
	date, tm, err := s.validateSlot(in.Date, in.Time)
	if err != nil {
		return Appointment{}, err
	}
	if err := s.checkRefs(ctx, sess.UserID, in.PetID, in.ServiceID); err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		OwnerUserID: sess.UserID,
		PetID:       strings.TrimSpace(in.PetID),
		ServiceID:   strings.TrimSpace(in.ServiceID),
		Date:        date,
		Time:        tm,
		Status:      StatusPending,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.record(ctx, sess, a, activity.TypeCreated, map[string]any{
		"date": a.Date, "time": a.Time, "service_id": a.ServiceID, "pet_id": a.PetID,
	})
	return a, nil
}

type RescheduleInput struct {
	// nil = no tocar
	PetID     *string
	ServiceID *string
	Date      *string
	Time      *string
	Notes     *string
}

// Reschedule edita un turno propio mientras sea modificable. El estado no cambia.
func (s *Service) Reschedule(ctx context.Context, sess session.Session, id string, in RescheduleInput) (Appointment, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.OwnerUserID != sess.UserID {
		return Appointment{}, ErrForbidden
	}
	if !a.Status.Modifiable() {
		return Appointment{}, ErrNotModifiable
	}

	next := a
	if in.PetID != nil {
		next.PetID = strings.TrimSpace(*in.PetID)
	}
	if in.ServiceID != nil {
		next.ServiceID = strings.TrimSpace(*in.ServiceID)
	}
	if in.Date != nil {
		next.Date = *in.Date
	}
	if in.Time != nil {
		next.Time = *in.Time
	}
	if in.Notes != nil {
		next.Notes = strings.TrimSpace(*in.Notes)
	}

	if in.Date != nil || in.Time != nil {
		if next.Date, next.Time, err = s.validateSlot(next.Date, next.Time); err != nil {
			return Appointment{}, err
		}
	}
	if in.PetID != nil || in.ServiceID != nil {
		if err := s.checkRefs(ctx, sess.UserID, next.PetID, next.ServiceID); err != nil {
			return Appointment{}, err
		}
	}
	next.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, next, a.Status); err != nil {
		return Appointment{}, err
	}

	s.record(ctx, sess, next, activity.TypeRescheduled, map[string]any{
		"from_date": a.Date, "from_time": a.Time, "date": next.Date, "time": next.Time,
	})
	return next, nil
}

// ClientAgenda es la vista del cliente ya particionada.
type ClientAgenda struct {
	Upcoming []Details
	History  []Details
}

// ListForOwner devuelve los turnos del usuario según la vista pedida.
// ViewAll llena ambos lados; el resto deja vacío el que no corresponde.
func (s *Service) ListForOwner(ctx context.Context, sess session.Session, view View) (ClientAgenda, error) {
	list, err := s.repo.List(ctx, Filter{OwnerUserID: sess.UserID})
	if err != nil {
		return ClientAgenda{}, err
	}

	today := s.Today()
	var upcoming, history []Appointment
	switch view {
	case ViewModifiable:
		upcoming = FilterModifiable(list)
	case ViewUpcoming:
		upcoming, _ = Partition(list, today)
	case ViewHistory:
		_, history = Partition(list, today)
	default:
		upcoming, history = Partition(list, today)
	}

	up, err := s.enrich(ctx, upcoming)
	if err != nil {
		return ClientAgenda{}, err
	}
	hist, err := s.enrich(ctx, history)
	if err != nil {
		return ClientAgenda{}, err
	}
	return ClientAgenda{Upcoming: up, History: hist}, nil
}

// Get devuelve el turno enriquecido al dueño o a un admin.
func (s *Service) Get(ctx context.Context, sess session.Session, id string) (Details, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return Details{}, err
	}
	if a.OwnerUserID != sess.UserID && !sess.IsAdmin() {
		return Details{}, ErrForbidden
	}
	out, err := s.enrich(ctx, []Appointment{a})
	if err != nil {
		return Details{}, err
	}
	return out[0], nil
}

// Remove borra el turno (dueño o admin) mientras sea PENDING o CONFIRMED.
func (s *Service) Remove(ctx context.Context, sess session.Session, id string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if a.OwnerUserID != sess.UserID && !sess.IsAdmin() {
		return ErrForbidden
	}
	if !a.Status.Modifiable() {
		return ErrNotModifiable
	}
	if err := s.repo.Delete(ctx, a.ID, a.Status); err != nil {
		return err
	}

	s.record(ctx, sess, a, activity.TypeRemoved, map[string]any{
		"status": string(a.Status), "date": a.Date, "time": a.Time,
	})
	return nil
}

// Activity devuelve el historial. Sirve también para turnos ya borrados:
// el dueño se toma de las entradas.
func (s *Service) Activity(ctx context.Context, sess session.Session, id string) ([]activity.Entry, error) {
	if s.activity == nil {
		return []activity.Entry{}, nil
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	entries, err := s.activity.List(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return entries, nil
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	if entries[0].OwnerUserID != sess.UserID {
		return nil, ErrForbidden
	}
	return entries, nil
}

// -------------------------
// Admin
// -------------------------

// SetStatus aplica una transición de admin. Fuera de la tabla => ErrInvalidTransition
// y el turno queda igual.
func (s *Service) SetStatus(ctx context.Context, sess session.Session, id string, to Status) (Appointment, error) {
	if !sess.IsAdmin() {
		return Appointment{}, ErrForbidden
	}
	a, err := s.get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	action, err := Transition(a.Status, to)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, a.ID, a.Status, to, now); err != nil {
		return Appointment{}, err
	}

	from := a.Status
	a.Status = to
	a.UpdatedAt = now

	s.record(ctx, sess, a, actionType(action), map[string]any{
		"from": string(from), "to": string(to),
	})
	return a, nil
}

type AgendaFilter struct {
	Date   string // vacío = todas las fechas
	Status string // vacío o ALL = todos
}

type AdminAgenda struct {
	Items []Details
	// PendingCount cuenta los PENDING del resultado con fecha >= hoy.
	PendingCount int
}

// Agenda es la vista de admin con todos los turnos de todos los clientes.
func (s *Service) Agenda(ctx context.Context, sess session.Session, f AgendaFilter) (AdminAgenda, error) {
	if !sess.IsAdmin() {
		return AdminAgenda{}, ErrForbidden
	}

	filter := Filter{}
	if d := strings.TrimSpace(f.Date); d != "" {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return AdminAgenda{}, errors.Wrap(ErrInvalidInput, "date must be YYYY-MM-DD")
		}
		filter.Date = d
	}
	if st := strings.TrimSpace(f.Status); st != "" && !strings.EqualFold(st, "ALL") {
		status, err := ParseStatus(st)
		if err != nil {
			return AdminAgenda{}, err
		}
		filter.Status = status
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return AdminAgenda{}, err
	}
	items, err := s.enrich(ctx, list)
	if err != nil {
		return AdminAgenda{}, err
	}
	return AdminAgenda{Items: items, PendingCount: CountPending(list, s.Today())}, nil
}

// ListRange es la lectura cruda por rango de fechas (inclusivo) para reportes.
// to vacío = sin tope.
func (s *Service) ListRange(ctx context.Context, from, to string) ([]Appointment, error) {
	return s.repo.List(ctx, Filter{From: from, To: to})
}

// -------------------------
// internos
// -------------------------

func (s *Service) get(ctx context.Context, id string) (Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) validateSlot(date, tm string) (string, string, error) {
	date, tm = strings.TrimSpace(date), strings.TrimSpace(tm)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", "", errors.Wrap(ErrInvalidInput, "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, tm); err != nil {
		return "", "", errors.Wrap(ErrInvalidInput, "time must be HH:MM")
	}
	if date < s.Today() {
		return "", "", errors.Wrap(ErrInvalidInput, "date cannot be in the past")
	}
	return date, tm, nil
}

func (s *Service) checkRefs(ctx context.Context, userID, petID, serviceID string) error {
	petID, serviceID = strings.TrimSpace(petID), strings.TrimSpace(serviceID)
	if petID == "" || serviceID == "" {
		return errors.Wrap(ErrInvalidInput, "pet_id and service_id are required")
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return errors.Wrap(ErrInvalidInput, "pet not found")
		}
		return err
	}
	if p.OwnerUserID != userID {
		return errors.Wrap(ErrForbidden, "pet belongs to another user")
	}

	if _, err := s.services.Get(ctx, serviceID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return errors.Wrap(ErrInvalidInput, "service not found")
		}
		return err
	}
	return nil
}

// enrich hace el join turno -> mascota/servicio/perfil con mapas de lookup.
func (s *Service) enrich(ctx context.Context, list []Appointment) ([]Details, error) {
	out := make([]Details, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}

	petIDs := make([]string, 0, len(list))
	serviceIDs := make([]string, 0, len(list))
	ownerIDs := make([]string, 0, len(list))
	seen := map[string]struct{}{}
	add := func(dst *[]string, prefix, id string) {
		if id == "" {
			return
		}
		if _, ok := seen[prefix+id]; ok {
			return
		}
		seen[prefix+id] = struct{}{}
		*dst = append(*dst, id)
	}
	for _, a := range list {
		add(&petIDs, "p:", a.PetID)
		add(&serviceIDs, "s:", a.ServiceID)
		add(&ownerIDs, "o:", a.OwnerUserID)
	}

	petsByID, err := s.pets.LookupMany(ctx, petIDs)
	if err != nil {
		return nil, errors.Wrap(err, "lookup pets")
	}
	servicesByID, err := s.services.LookupMany(ctx, serviceIDs)
	if err != nil {
		return nil, errors.Wrap(err, "lookup services")
	}
	ownersByID := map[string]profiles.Profile{}
	if s.profiles != nil {
		if ownersByID, err = s.profiles.LookupMany(ctx, ownerIDs); err != nil {
			return nil, errors.Wrap(err, "lookup profiles")
		}
	}

	for _, a := range list {
		d := Details{Appointment: a}
		if p, ok := petsByID[a.PetID]; ok {
			d.Pet = &p
		}
		if sv, ok := servicesByID[a.ServiceID]; ok {
			d.Service = &sv
		}
		if o, ok := ownersByID[a.OwnerUserID]; ok {
			d.Owner = &o
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) record(ctx context.Context, sess session.Session, a Appointment, t activity.Type, payload map[string]any) {
	if s.activity == nil {
		return
	}
	_, err := s.activity.Record(ctx, activity.Entry{
		AppointmentID: a.ID,
		OwnerUserID:   a.OwnerUserID,
		Type:          t,
		Actor:         activity.Actor{ID: sess.UserID, Role: sess.Role},
		Payload:       payload,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "record appointment activity failed",
			"appointment_id", a.ID, "type", t, "err", err)
	}
}

func actionType(a Action) activity.Type {
	switch a {
	case ActionConfirm:
		return activity.TypeConfirmed
	case ActionReject:
		return activity.TypeRejected
	default:
		return activity.TypeCompleted
	}
}

package activity

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/ports/events"
)

var ErrInvalidInput = errors.New("invalid input")

// Policy decide si un tipo de entrada se publica hacia afuera (notificaciones).
type Policy interface {
	ShouldPublish(ctx context.Context, t Type) (bool, error)
}

// Log guarda el historial y lo publica al broker cuando la política lo permite.
// pub y policy pueden ser nil: solo se guarda.
type Log struct {
	repo   Repository
	pub    events.Publisher
	policy Policy
	logger *slog.Logger
	now    func() time.Time
}

func NewLog(repo Repository, pub events.Publisher, policy Policy, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{
		repo:   repo,
		pub:    pub,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// Record guarda la entrada. Un fallo al publicar se loguea y no se devuelve:
// la entrada ya quedó persistida.
func (l *Log) Record(ctx context.Context, e Entry) (Entry, error) {
	if strings.TrimSpace(e.AppointmentID) == "" || !e.Type.Valid() {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(e.Actor.ID) == "" {
		return Entry{}, errors.Wrap(ErrInvalidInput, "actor required")
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = l.now()
	}

	if err := l.repo.Append(ctx, e); err != nil {
		return Entry{}, errors.Wrap(err, "append activity")
	}

	l.publish(ctx, e)
	return e, nil
}

func (l *Log) publish(ctx context.Context, e Entry) {
	if l.pub == nil {
		return
	}
	if l.policy != nil {
		ok, err := l.policy.ShouldPublish(ctx, e.Type)
		if err != nil {
			l.logger.WarnContext(ctx, "notification policy failed", "type", e.Type, "err", err)
			return
		}
		if !ok {
			return
		}
	}

	msg := events.Message{
		ID:            e.ID,
		Type:          string(e.Type),
		AppointmentID: e.AppointmentID,
		OwnerUserID:   e.OwnerUserID,
		ActorID:       e.Actor.ID,
		ActorRole:     string(e.Actor.Role),
		OccurredAt:    e.OccurredAt,
		Payload:       e.Payload,
	}
	if err := l.pub.Publish(ctx, msg); err != nil {
		l.logger.ErrorContext(ctx, "publish activity failed",
			"type", e.Type, "appointment_id", e.AppointmentID, "err", err)
	}
}

func (l *Log) List(ctx context.Context, appointmentID string) ([]Entry, error) {
	if strings.TrimSpace(appointmentID) == "" {
		return nil, ErrInvalidInput
	}
	return l.repo.ListByAppointment(ctx, appointmentID)
}

package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/activity"
	"pet-grooming-agenda/internal/platform/validation"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("setting not found")
	ErrUnknownCategory = errors.New("unknown settings category")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get devuelve el valor tipado de la categoría; si no existe, el default.
func (s *Service) Get(ctx context.Context, c Category) (any, error) {
	v, err := defaultFor(c)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Get(ctx, c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return deref(v), nil
		}
		return nil, err
	}
	// se decodifica encima del default: campos faltantes quedan con su valor default
	if err := json.Unmarshal(row.Value, v); err != nil {
		return nil, errors.Wrapf(err, "decode setting %s", c)
	}
	return deref(v), nil
}

// Upsert valida el JSON contra el tipo de la categoría y lo guarda completo.
func (s *Service) Upsert(ctx context.Context, c Category, raw json.RawMessage) (any, error) {
	v, err := defaultFor(c)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return nil, errors.Wrap(ErrInvalidInput, "invalid json for "+string(c))
	}
	if err := check(v); err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := s.repo.Upsert(ctx, Setting{Category: c, Value: normalized, UpdatedAt: s.now()}); err != nil {
		return nil, err
	}
	return deref(v), nil
}

func (s *Service) Notifications(ctx context.Context) (Notifications, error) {
	v, err := s.Get(ctx, CategoryNotifications)
	if err != nil {
		return Notifications{}, err
	}
	return v.(Notifications), nil
}

// ShouldPublish decide si una entrada del historial sale como notificación.
// Alta => newApp, rechazo/baja => cancel, el resto solo depende de enabled.
func (s *Service) ShouldPublish(ctx context.Context, t activity.Type) (bool, error) {
	n, err := s.Notifications(ctx)
	if err != nil {
		return false, err
	}
	if !n.Enabled {
		return false, nil
	}
	switch t {
	case activity.TypeCreated:
		return n.NewApp, nil
	case activity.TypeRejected, activity.TypeRemoved:
		return n.Cancel, nil
	default:
		return true, nil
	}
}

func defaultFor(c Category) (any, error) {
	switch c {
	case CategoryNotifications:
		v := DefaultNotifications()
		return &v, nil
	case CategoryBusinessHours:
		v := DefaultBusinessHours()
		return &v, nil
	case CategoryPaymentMethods:
		v := DefaultPaymentMethods()
		return &v, nil
	default:
		return nil, errors.Wrapf(ErrUnknownCategory, "%q", c)
	}
}

func deref(v any) any {
	switch p := v.(type) {
	case *Notifications:
		return *p
	case *BusinessHours:
		return *p
	case *PaymentMethods:
		return *p
	default:
		return v
	}
}

func check(v any) error {
	bh, ok := v.(*BusinessHours)
	if !ok {
		return nil
	}
	if err := validation.Struct(bh); err != nil {
		return errors.Wrap(ErrInvalidInput, "business hours must be HH:MM")
	}
	for day, h := range bh.days() {
		// HH:MM se compara bien como texto
		if h.Enabled && h.Open >= h.Close {
			return errors.Wrapf(ErrInvalidInput, "%s: open must be before close", day)
		}
	}
	return nil
}

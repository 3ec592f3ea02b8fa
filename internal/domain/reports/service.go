package reports

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/appointments"
	"pet-grooming-agenda/internal/domain/catalog"
)

type AppointmentSource interface {
	ListRange(ctx context.Context, from, to string) ([]appointments.Appointment, error)
}

type PriceSource interface {
	LookupMany(ctx context.Context, ids []string) (map[string]catalog.Service, error)
}

// Service arma los snapshots y delega el cálculo en las funciones puras.
type Service struct {
	appts  AppointmentSource
	prices PriceSource
	loc    *time.Location
	now    func() time.Time
}

func NewService(appts AppointmentSource, prices PriceSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		appts:  appts,
		prices: prices,
		loc:    loc,
		now:    time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (Daily, error) {
	today := s.now().In(s.loc).Format(appointments.DateLayout)
	entries, err := s.snapshot(ctx, today, "")
	if err != nil {
		return Daily{}, err
	}
	return DailyStats(entries, today), nil
}

func (s *Service) Financial(ctx context.Context) (Monthly, error) {
	now := s.now().In(s.loc)

	curFrom, curTo := MonthBounds(now)
	prevFrom, prevTo := MonthBounds(PreviousMonth(now))

	current, err := s.snapshot(ctx, curFrom, curTo)
	if err != nil {
		return Monthly{}, err
	}
	previous, err := s.snapshot(ctx, prevFrom, prevTo)
	if err != nil {
		return Monthly{}, err
	}
	return MonthlyStats(current, previous), nil
}

func (s *Service) snapshot(ctx context.Context, from, to string) ([]Entry, error) {
	list, err := s.appts.ListRange(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "list appointments")
	}

	ids := make([]string, 0, len(list))
	seen := map[string]struct{}{}
	for _, a := range list {
		if _, ok := seen[a.ServiceID]; !ok {
			seen[a.ServiceID] = struct{}{}
			ids = append(ids, a.ServiceID)
		}
	}
	services, err := s.prices.LookupMany(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "lookup services")
	}

	out := make([]Entry, 0, len(list))
	for _, a := range list {
		e := Entry{
			AppointmentID: a.ID,
			Date:          a.Date,
			Status:        a.Status,
			ServiceID:     a.ServiceID,
		}
		// servicio borrado: precio 0, como en el join original
		if sv, ok := services[a.ServiceID]; ok {
			e.ServiceName = sv.Name
			e.Price = sv.Price
		}
		out = append(out, e)
	}
	return out, nil
}

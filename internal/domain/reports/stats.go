// Package reports calcula los números del dashboard y del reporte financiero.
// Las funciones de este archivo son puras: reciben un snapshot y no tocan el store.
package reports

import (
	"sort"
	"time"

	"pet-grooming-agenda/internal/domain/appointments"
)

const topServicesLimit = 5

// Entry es un turno con el precio de su servicio ya resuelto.
// ServiceName vacío = el servicio ya no existe (no entra en el ranking).
type Entry struct {
	AppointmentID string
	Date          string
	Status        appointments.Status
	ServiceID     string
	ServiceName   string
	Price         float64
}

type Daily struct {
	TodayCount   int     `json:"today_count"`
	PendingCount int     `json:"pending_count"`
	TodayRevenue float64 `json:"today_revenue"`
}

// DailyStats: TodayRevenue suma TODOS los turnos de hoy sin mirar el estado.
func DailyStats(entries []Entry, today string) Daily {
	var d Daily
	for _, e := range entries {
		if e.Date == today {
			d.TodayCount++
			d.TodayRevenue += e.Price
		}
		if e.Status == appointments.StatusPending && e.Date >= today {
			d.PendingCount++
		}
	}
	return d
}

type ServiceRank struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
}

type Monthly struct {
	CurrentMonthRevenue      float64       `json:"current_month_revenue"`
	LastMonthRevenue         float64       `json:"last_month_revenue"`
	CurrentMonthAppointments int           `json:"current_month_appointments"`
	CompletedAppointments    int           `json:"completed_appointments"`
	AverageTicket            float64       `json:"average_ticket"`
	TopServices              []ServiceRank `json:"top_services"`
}

// MonthlyStats recibe los turnos del mes actual y del anterior.
func MonthlyStats(current, previous []Entry) Monthly {
	m := Monthly{
		CurrentMonthAppointments: len(current),
		TopServices:              TopServices(current, topServicesLimit),
	}
	for _, e := range current {
		m.CurrentMonthRevenue += e.Price
		if e.Status == appointments.StatusCompleted {
			m.CompletedAppointments++
		}
	}
	for _, e := range previous {
		m.LastMonthRevenue += e.Price
	}
	if m.CurrentMonthAppointments > 0 {
		m.AverageTicket = m.CurrentMonthRevenue / float64(m.CurrentMonthAppointments)
	}
	return m
}

// TopServices ordena por cantidad desc; los empates quedan en el orden en que
// aparece cada servicio por primera vez en entries.
func TopServices(entries []Entry, limit int) []ServiceRank {
	idx := map[string]int{}
	ranks := make([]ServiceRank, 0)
	for _, e := range entries {
		if e.ServiceName == "" {
			continue
		}
		i, ok := idx[e.ServiceID]
		if !ok {
			i = len(ranks)
			idx[e.ServiceID] = i
			ranks = append(ranks, ServiceRank{ServiceID: e.ServiceID, Name: e.ServiceName})
		}
		ranks[i].Count++
		ranks[i].Revenue += e.Price
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Count > ranks[j].Count })
	if limit >= 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// MonthBounds devuelve el primer y el último día (YYYY-MM-DD) del mes de t.
func MonthBounds(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(appointments.DateLayout), last.Format(appointments.DateLayout)
}

// PreviousMonth devuelve un instante dentro del mes anterior a t.
func PreviousMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, -1, 0)
}

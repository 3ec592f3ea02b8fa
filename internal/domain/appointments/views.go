package appointments

// Partition separa una lista en próximos (fecha >= today) e historial (fecha < today).
// Cada turno cae en exactamente uno de los dos lados; el orden relativo se conserva.
func Partition(list []Appointment, today string) (upcoming, history []Appointment) {
	upcoming = make([]Appointment, 0, len(list))
	history = make([]Appointment, 0)
	for _, a := range list {
		if a.Date >= today {
			upcoming = append(upcoming, a)
		} else {
			history = append(history, a)
		}
	}
	return upcoming, history
}

// FilterModifiable deja solo PENDING y CONFIRMED.
func FilterModifiable(list []Appointment) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if a.Status.Modifiable() {
			out = append(out, a)
		}
	}
	return out
}

// CountPending cuenta los PENDING con fecha >= today.
func CountPending(list []Appointment, today string) int {
	n := 0
	for _, a := range list {
		if a.Status == StatusPending && a.Date >= today {
			n++
		}
	}
	return n
}

// View es la proyección pedida por el cliente en /appointments.
type View string

const (
	ViewAll        View = "all"
	ViewUpcoming   View = "upcoming"
	ViewHistory    View = "history"
	ViewModifiable View = "modifiable"
)

func ParseView(s string) (View, bool) {
	switch v := View(s); v {
	case "":
		return ViewAll, true
	case ViewAll, ViewUpcoming, ViewHistory, ViewModifiable:
		return v, true
	default:
		return "", false
	}
}

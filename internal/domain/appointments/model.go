package appointments

import (
	"time"

	"pet-grooming-agenda/internal/domain/catalog"
	"pet-grooming-agenda/internal/domain/pets"
	"pet-grooming-agenda/internal/domain/profiles"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment vincula dueño, mascota y servicio a una fecha/hora.
// Date y Time se guardan como texto (YYYY-MM-DD / HH:MM) en la zona del negocio,
// así la comparación lexicográfica sirve para ordenar y filtrar.
type Appointment struct {
	ID          string
	OwnerUserID string
	PetID       string
	ServiceID   string

	Date string
	Time string

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Details es el turno enriquecido para mostrar. Las referencias pueden faltar
// (mascota borrada, por ejemplo).
type Details struct {
	Appointment

	Pet     *pets.Pet
	Service *catalog.Service
	Owner   *profiles.Profile
}

package profiles

import (
	"time"

	"pet-grooming-agenda/internal/session"
)

// Profile es el registro de la app para un usuario del proveedor de identidad.
// ID coincide con el user id del token.
type Profile struct {
	ID string

	FullName  string
	Phone     string
	AvatarURL string
	Role      session.Role

	Address      string
	Neighborhood string

	CreatedAt time.Time
	UpdatedAt time.Time
}

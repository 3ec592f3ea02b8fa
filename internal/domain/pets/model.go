package pets

import "time"

// Type define el tipo de mascota.
// @Enum dog, cat, other
type Type string

const (
	TypeDog   Type = "dog"
	TypeCat   Type = "cat"
	TypeOther Type = "other"
)

func ParseType(s string) (Type, bool) {
	switch t := Type(s); t {
	case TypeDog, TypeCat, TypeOther:
		return t, true
	default:
		return "", false
	}
}

// Pet es la mascota de un cliente. Solo el dueño la crea, edita o borra.
type Pet struct {
	ID          string
	OwnerUserID string

	Name  string
	Breed string
	Age   string // texto libre ("2 años", "8 meses")
	Type  Type

	ImageURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

package appointments

import (
	"strings"

	"github.com/pkg/errors"
)

// Status del turno.
// @Enum PENDING, CONFIRMED, COMPLETED, CANCELED
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// legacyInProgress aparece en datos viejos; no es parte de la máquina de estados.
const legacyInProgress = "IN_PROGRESS"

var ErrInvalidStatus = errors.New("invalid status")

// Statuses es el conjunto cerrado, en orden de ciclo de vida.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled}
}

// ParseStatus acepta solo los cuatro estados vivos (case-insensitive).
func ParseStatus(s string) (Status, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch st := Status(v); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return st, nil
	}
	if v == legacyInProgress {
		return "", errors.Wrap(ErrInvalidStatus, "IN_PROGRESS is not a supported status")
	}
	return "", errors.Wrapf(ErrInvalidStatus, "unknown status %q", s)
}

// Modifiable: el turno todavía se puede editar o borrar.
func (s Status) Modifiable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal: no admite más transiciones.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Action es el nombre de cada transición de admin.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
)

// transitions: from -> to -> acción. Solo el admin las dispara.
var transitions = map[Status]map[Status]Action{
	StatusPending: {
		StatusConfirmed: ActionConfirm,
		StatusCanceled:  ActionReject,
	},
	StatusConfirmed: {
		StatusCompleted: ActionComplete,
	},
}

// Transition devuelve la acción que lleva de from a to, o ErrInvalidTransition.
func Transition(from, to Status) (Action, error) {
	if a, ok := transitions[from][to]; ok {
		return a, nil
	}
	return "", errors.Wrapf(ErrInvalidTransition, "%s -> %s", from, to)
}

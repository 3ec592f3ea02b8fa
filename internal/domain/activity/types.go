package activity

type Type string

const (
	TypeCreated     Type = "APPOINTMENT_CREATED"
	TypeConfirmed   Type = "APPOINTMENT_CONFIRMED"
	TypeRejected    Type = "APPOINTMENT_REJECTED"
	TypeCompleted   Type = "APPOINTMENT_COMPLETED"
	TypeRescheduled Type = "APPOINTMENT_RESCHEDULED"
	TypeRemoved     Type = "APPOINTMENT_REMOVED"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCreated, TypeConfirmed, TypeRejected, TypeCompleted, TypeRescheduled, TypeRemoved:
		return true
	default:
		return false
	}
}

// Package session lleva el usuario autenticado y su rol a través del request.
// Se inicializa en el middleware (a partir de los claims verificados y del perfil)
// y no existe fuera de ese request.
package session

import (
	"context"
	"strings"
)

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole normaliza el rol guardado. Valores desconocidos se tratan como CLIENT.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleClient
	}
}

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

type Session struct {
	UserID string
	Email  string
	Role   Role
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext devuelve la sesión si hay un usuario autenticado.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || strings.TrimSpace(s.UserID) == "" {
		return Session{}, false
	}
	return s, true
}

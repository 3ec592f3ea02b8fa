package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-grooming-agenda/internal/session"
)

func TestParseRoleFlag(t *testing.T) {
	for in, want := range map[string]session.Role{
		"ADMIN":    session.RoleAdmin,
		"admin":    session.RoleAdmin,
		" Client ": session.RoleClient,
	} {
		got, err := parseRoleFlag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "boss", "admins"} {
		_, err := parseRoleFlag(in)
		assert.Error(t, err, in)
	}
}

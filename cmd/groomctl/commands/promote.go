package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	pg "pet-grooming-agenda/internal/adapters/storage/postgres"
	"pet-grooming-agenda/internal/domain/profiles"
	"pet-grooming-agenda/internal/session"
)

func promoteCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "promote [user-id]",
		Short: "Cambia el rol de un usuario (crea el perfil si no existe)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRoleFlag(role)
			if err != nil {
				return err
			}

			// sin imágenes: promote no toca el avatar
			svc := profiles.NewService(pg.NewProfilesRepo(db), nil, nil)
			if err := svc.Promote(cmd.Context(), args[0], r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], r)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(session.RoleAdmin), "ADMIN o CLIENT")
	return cmd
}

// parseRoleFlag acepta el rol sin importar mayúsculas; a diferencia de
// session.ParseRole, un valor desconocido es error y no CLIENT.
func parseRoleFlag(s string) (session.Role, error) {
	r := session.Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", errors.Errorf("role must be %s or %s, got %q", session.RoleAdmin, session.RoleClient, s)
	}
	return r, nil
}

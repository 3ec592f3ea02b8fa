package commands

import (
	"github.com/spf13/cobra"

	pg "pet-grooming-agenda/internal/adapters/storage/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el schema (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("schema applied")
			return nil
		},
	}
}

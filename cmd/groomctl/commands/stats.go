package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	pg "pet-grooming-agenda/internal/adapters/storage/postgres"
	"pet-grooming-agenda/internal/domain/appointments"
	"pet-grooming-agenda/internal/domain/catalog"
	"pet-grooming-agenda/internal/domain/reports"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Imprime el dashboard del día y el reporte del mes en JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appts := appointments.NewService(appointments.Deps{
				Repo:     pg.NewAppointmentsRepo(db),
				Location: loc,
				Logger:   log,
			})
			prices := catalog.NewCatalog(pg.NewServicesRepo(db), nil)
			svc := reports.NewService(appts, prices, loc)

			daily, err := svc.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			monthly, err := svc.Financial(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"today": appts.Today(),
				"daily": daily,
				"month": monthly,
			})
		},
	}
}

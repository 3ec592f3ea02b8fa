// Package commands tiene los subcomandos de groomctl, la CLI de operación.
package commands

import (
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	pg "pet-grooming-agenda/internal/adapters/storage/postgres"
	"pet-grooming-agenda/internal/platform/config"
	"pet-grooming-agenda/internal/platform/logger"
)

var (
	configDir string
	dsn       string

	cfg *config.Config
	db  *sql.DB
	log *slog.Logger
	loc *time.Location
)

func Execute() error {
	root := &cobra.Command{
		Use:          "groomctl",
		Short:        "Operación de la agenda de peluquería (migraciones, roles, números)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configDir != "" {
				if err := os.Setenv("CONFIG_DIR", configDir); err != nil {
					return err
				}
			}
			c, err := config.New()
			if err != nil {
				return err
			}
			cfg = c
			log = logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.Env.Log.Level),
				Format: logger.ParseFormat(cfg.Env.Log.Format),
				App:    "groomctl",
				Output: os.Stderr,
			})

			if loc, err = cfg.Business.Location(); err != nil {
				return err
			}

			if dsn == "" {
				dsn = cfg.Postgres.DSN
			}
			if strings.TrimSpace(dsn) == "" {
				return errors.New("postgres dsn required (--dsn or POSTGRES_DSN)")
			}
			db, err = pg.Open(dsn)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if db != nil {
				return db.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "directorio con config.yaml")
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres dsn (default: postgres.dsn de la config)")

	root.AddCommand(migrateCmd(), promoteCmd(), statsCmd())
	return root.Execute()
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/socks-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL embebidas",
	Long: `Conecta a PostgreSQL (DB_*) y aplica las migraciones pendientes.
Las ya registradas en schema_migrations se omiten.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

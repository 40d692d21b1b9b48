package main

import (
	"fmt"

	"github.com/jhoicas/pos-stock/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Aplica o revierte el esquema de base de datos",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			up := args[0] == "up"
			if err := postgres.Migrate(a.cfg.DB.ConnectionString(), up); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			a.log.Info().Str("direction", args[0]).Msg("migraciones aplicadas")
			return nil
		},
	}
}

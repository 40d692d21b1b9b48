package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/pos-stock/pkg/config"
	"github.com/jhoicas/pos-stock/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app estado compartido por los subcomandos; se carga en PersistentPreRunE.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pos-stock",
		Short:         "Motor de inventario y movimientos de stock del punto de venta",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Env:     cfg.App.Env,
				Level:   cfg.App.LogLevel,
				Service: cfg.App.Name,
				Out:     cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newLowStockCmd(a),
		newTokenCmd(a),
	)
	return root
}

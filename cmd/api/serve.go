package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/pos-stock/internal/bootstrap"
	"github.com/jhoicas/pos-stock/internal/infrastructure/scheduler"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP y la revisión periódica de stock bajo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := a.log
			log.Info().Str("env", a.cfg.App.Env).Str("app", a.cfg.App.Name).Msg("iniciando aplicación")

			c, err := bootstrap.New(cmd.Context(), a.cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			cr, err := scheduler.Start(log, scheduler.Job{
				Name:     "low_stock",
				Schedule: a.cfg.Stock.LowStockSchedule,
				Run:      c.LowStock.Run,
			})
			if err != nil {
				return err
			}
			defer cr.Stop()

			server := c.HTTPApp()
			go func() {
				if err := server.Listen(a.cfg.HTTP.Addr()); err != nil {
					log.Error().Err(err).Msg("servidor HTTP finalizado")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("señal de apagado recibida, cerrando servidor...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("apagado del servidor")
			}
			log.Info().Msg("aplicación detenida")
			return nil
		},
	}
}

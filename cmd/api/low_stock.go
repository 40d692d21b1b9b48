package main

import (
	"fmt"

	"github.com/jhoicas/pos-stock/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newLowStockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "Revisa una vez los inventarios en stock bajo y publica las alertas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := bootstrap.New(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer c.Close()

			list, err := c.LowStock.Check(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, inv := range list {
				fmt.Fprintf(out, "%s\t%s\t%d/%d\t%s\n", inv.ID, inv.ProductID, inv.Quantity, inv.MinimumStock, inv.Location)
			}
			return nil
		},
	}
}

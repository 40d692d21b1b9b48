package main

import (
	"fmt"

	"github.com/jhoicas/pos-stock/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var role string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token <employee-id>",
		Short: "Emite un JWT de desarrollo para un empleado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes <= 0 {
				minutes = a.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(a.cfg.JWT.Secret, args[0], role, a.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVarP(&role, "role", "r", jwt.RoleManager, "rol del empleado (cashier, stock_clerk, manager)")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	return cmd
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/paycalc/salary-tax-calculator/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := a.calculator(nil)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(calc, a.logger).ListenAndServe(ctx, a.settings.Server)
		},
	}
	cmd.Flags().String("addr", "", "listen address override")
	return cmd
}

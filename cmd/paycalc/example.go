package main

import (
	"github.com/paycalc/salary-tax-calculator/internal/config"
	"github.com/paycalc/salary-tax-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newExampleCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example salary configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, path); err != nil {
				return err
			}
			a.logger.Infof("Example configuration written to %s", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "example_config.yaml", "destination file")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the bracket tables in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := a.calculator(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tables := calc.Rules.Tables()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tables)
			}

			fmt.Fprintf(out, "Standard deduction: %s\n", output.FormatCurrency(calc.Rules.StandardDeduction()))
			for _, t := range tables {
				fmt.Fprintf(out, "\n%s\n", t.Name())
				lower := decimal.Zero
				for _, b := range t.Brackets.Brackets() {
					if b.Unbounded {
						fmt.Fprintf(out, "  above %-12s %s\n", output.FormatCurrency(lower), output.FormatRate(b.Rate))
						continue
					}
					fmt.Fprintf(out, "  up to %-12s %s\n", output.FormatCurrency(b.UpperBound), output.FormatRate(b.Rate))
					lower = b.UpperBound
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tables as JSON")
	return cmd
}

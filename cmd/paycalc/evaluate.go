package main

import (
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/paycalc/salary-tax-calculator/internal/output"
	money "github.com/paycalc/salary-tax-calculator/pkg/decimal"
	"github.com/spf13/cobra"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var income, regime, age string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute tax on an annual income under one regime",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.NewMoneyFromString(income)
			if err != nil {
				return fmt.Errorf("%w: income %q", domain.ErrInvalidInput, income)
			}
			r, err := domain.ParseRegime(regime)
			if err != nil {
				return err
			}
			var category domain.AgeCategory
			if age != "" {
				if category, err = domain.ParseAgeCategory(age); err != nil {
					return err
				}
			}

			calc, err := a.calculator(nil)
			if err != nil {
				return err
			}
			result, err := calc.EvaluateRegime(amount.Decimal, r, category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s on %s\n", r.Label(), output.FormatCurrency(result.IncomeBasis))
			fmt.Fprintf(out, "Tax:            %s\n", output.FormatCurrency(result.Tax))
			fmt.Fprintf(out, "Marginal rate:  %s\n", output.FormatRate(result.MarginalRate))
			fmt.Fprintf(out, "Effective rate: %s\n", output.FormatRate(result.EffectiveRate))
			return nil
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "annual income")
	cmd.Flags().StringVar(&regime, "regime", "new", "regime: old or new")
	cmd.Flags().StringVar(&age, "age", "", "age category (<60, 60-80, >80); required for the old regime")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

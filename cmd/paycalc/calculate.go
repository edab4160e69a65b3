package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/paycalc/salary-tax-calculator/internal/config"
	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/paycalc/salary-tax-calculator/internal/output"
	"github.com/paycalc/salary-tax-calculator/pkg/dateutil"
	"github.com/spf13/cobra"
)

func newCalculateCmd(a *app) *cobra.Command {
	var (
		configFile string
		payslip    string
		format     string
		regime     string
		outputDir  string
		asOf       string
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Derive taxable income, tax and take-home pay from a salary configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(configFile)
			if err != nil {
				return err
			}
			if regime != "" {
				sel, err := domain.ParseRegimeSelection(regime)
				if err != nil {
					return err
				}
				cfg.Regime = sel
			}
			if payslip != "" {
				cfg.Payslip = payslip
			}

			var uploaded *domain.SalaryInputs
			if cfg.Payslip != "" {
				imported, err := parser.LoadPayslipCSV(cfg.Payslip)
				if err != nil {
					return err
				}
				if len(imported.Ignored) > 0 {
					a.logger.Warnf("Ignored payslip lines: %s", strings.Join(imported.Ignored, ", "))
				}
				uploaded = &imported.Inputs
			}
			inputs := config.ResolveSalaryInputs(cfg.Salary, uploaded)

			at := time.Now()
			if asOf != "" {
				if at, err = time.Parse("2006-01-02", asOf); err != nil {
					return fmt.Errorf("invalid --as-of date: %w", err)
				}
			}
			age, err := config.ResolveAgeCategory(cfg, at)
			if err != nil {
				return err
			}

			calc, err := a.calculator(cfg.TaxRules)
			if err != nil {
				return err
			}
			a.logger.Debugf("Calculating for FY %s, age %s, selection %s", dateutil.FinancialYearLabel(at), age, cfg.Regime)
			outcome, err := calc.Derive(inputs, age, cfg.Regime)
			if err != nil {
				return err
			}

			if outputDir != "" {
				files, err := output.GenerateReport(outcome, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					a.logger.Infof("Report written to %s", f)
				}
				return nil
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
			}
			data, err := f.Format(outcome)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "salary configuration file (YAML)")
	cmd.Flags().StringVar(&payslip, "payslip", "", "payslip CSV whose values replace the configured salary")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVar(&regime, "regime", "", "regime selection override: old, new or compare")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().StringVar(&asOf, "as-of", "", "date used to derive the age category from a birth date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/paycalc/salary-tax-calculator/internal/calculation"
	"github.com/paycalc/salary-tax-calculator/internal/config"
	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app carries state shared by subcommands once settings are loaded.
type app struct {
	settingsFile string
	settings     config.Settings
	logger       *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "paycalc",
		Short:        "Indian salary tax calculator for the old and new regimes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Flags(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.settingsFile, "settings", "", "settings file (YAML, JSON or TOML)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format override (text or json)")

	root.AddCommand(
		newCalculateCmd(a),
		newEvaluateCmd(a),
		newTablesCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(flags *pflag.FlagSet, logOut io.Writer) error {
	settings, err := config.LoadSettings(a.settingsFile, flags)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = newLogger(settings.Log, logOut)
	return nil
}

func newLogger(cfg config.LogSettings, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// calculator builds a SalaryCalculator. Rule overrides in the input document
// take precedence over the settings rules file.
func (a *app) calculator(overrides *domain.TaxRulesConfig) (*calculation.SalaryCalculator, error) {
	if overrides == nil && a.settings.RulesFile != "" {
		loaded, err := config.LoadTaxRulesFile(a.settings.RulesFile)
		if err != nil {
			return nil, err
		}
		overrides = loaded
	}

	calc := calculation.NewSalaryCalculator()
	if overrides != nil {
		rules, err := calculation.NewTaxRules(*overrides)
		if err != nil {
			return nil, fmt.Errorf("tax rules: %w", err)
		}
		calc = calculation.NewSalaryCalculatorWithRules(rules)
	}
	calc.SetLogger(a.logger)
	return calc, nil
}

package output

import (
	"bytes"
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(outcome *domain.SalaryOutcome) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SALARY TAX SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Gross Annual Income: %s\n", FormatCurrency(outcome.Figures.GrossAnnual))
	fmt.Fprintf(&buf, "Taxable Income: %s\n", FormatCurrency(outcome.Figures.TaxableIncome))
	fmt.Fprintln(&buf)
	for _, t := range outcome.Taxes {
		fmt.Fprintf(&buf, "%s: Tax=%s Marginal=%s Effective=%s\n",
			t.Regime.Label(),
			FormatCurrency(t.Tax),
			FormatRate(t.MarginalRate),
			FormatRate(t.EffectiveRate),
		)
	}
	rec := AnalyzeRegimes(outcome)
	if rec.Compared {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (saves %s / %s)\n", rec.Regime.Label(), FormatCurrency(rec.Savings), FormatPercentage(rec.PercentageSaved))
	}
	fmt.Fprintf(&buf, "Take-Home: %s annual, %s monthly\n", FormatCurrency(outcome.TakeHome.Annual), FormatCurrencyPaise(outcome.TakeHome.Monthly))
	return buf.Bytes(), nil
}

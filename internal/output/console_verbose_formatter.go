package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(outcome *domain.SalaryOutcome) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 64)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "DETAILED SALARY TAX BREAKDOWN")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Age Category: %s    Regime Selection: %s\n", outcome.AgeCategory, outcome.Selection)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(outcome.Figures) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	f := outcome.Figures
	fmt.Fprintln(&buf, "INCOME AND DEDUCTIONS (Annual)")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	writeLine(&buf, "Housing Allowance (monthly)", FormatCurrency(f.MonthlyHousingAllowance))
	writeLine(&buf, "Gross Annual Income", FormatCurrency(f.GrossAnnual))
	writeLine(&buf, "Retirement Fund + Prof. Tax", FormatCurrency(f.AnnualDeductionsRaw))
	writeLine(&buf, "Standard Deduction", FormatCurrency(f.StandardDeduction))
	writeLine(&buf, "Total Deductions", FormatCurrency(f.TotalDeductions))
	writeLine(&buf, "Taxable Income", FormatCurrency(f.TaxableIncome))
	fmt.Fprintln(&buf)

	writeRegimeTable(&buf, outcome)

	rec := AnalyzeRegimes(outcome)
	fmt.Fprintln(&buf, "RECOMMENDATION")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if rec.Compared {
		fmt.Fprintf(&buf, "The %s is cheaper by %s (%s less tax).\n", rec.Regime.Label(), FormatCurrency(rec.Savings), FormatPercentage(rec.PercentageSaved))
	} else {
		fmt.Fprintf(&buf, "Only the %s was evaluated.\n", rec.Regime.Label())
	}
	writeLine(&buf, "Tax Owed", FormatCurrency(outcome.TaxOwed))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TAKE-HOME PAY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	writeLine(&buf, "Annual", FormatCurrency(outcome.TakeHome.Annual))
	writeLine(&buf, "Monthly", FormatCurrencyPaise(outcome.TakeHome.Monthly))
	if outcome.TakeHome.Annual.LessThan(decimal.Zero) {
		fmt.Fprintln(&buf, "⚠️  Deductions and tax exceed gross income.")
	}
	return buf.Bytes(), nil
}

func writeLine(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-30s %15s\n", label+":", value)
}

func writeRegimeTable(w io.Writer, outcome *domain.SalaryOutcome) {
	fmt.Fprintln(w, "TAX BY REGIME")
	fmt.Fprintln(w, strings.Repeat("-", 64))
	fmt.Fprintf(w, "%-12s %15s %12s %10s %10s\n", "Regime", "Income Basis", "Tax", "Marginal", "Effective")
	for _, t := range outcome.Taxes {
		marker := ""
		if t.Regime == outcome.AppliedRegime {
			marker = " *"
		}
		fmt.Fprintf(w, "%-12s %15s %12s %10s %10s%s\n",
			t.Regime.Label(),
			FormatCurrency(t.IncomeBasis),
			FormatCurrency(t.Tax),
			FormatRate(t.MarginalRate),
			FormatRate(t.EffectiveRate),
			marker,
		)
	}
	fmt.Fprintln(w, "* applied regime")
	fmt.Fprintln(w)
}

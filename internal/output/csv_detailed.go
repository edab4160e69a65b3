package output

import (
	"bytes"
	"encoding/csv"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVDetailedExporter writes every derived figure as a Section,Item,Amount line.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

type lineItem struct {
	section, item string
	amount        decimal.Decimal
}

func (c CSVDetailedExporter) Format(outcome *domain.SalaryOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Item", "Amount"}); err != nil {
		return nil, err
	}

	f := outcome.Figures
	rows := []lineItem{
		{"Income", "MonthlyHousingAllowance", f.MonthlyHousingAllowance},
		{"Income", "GrossAnnual", f.GrossAnnual},
		{"Deductions", "RetirementFundAndProfessionalTax", f.AnnualDeductionsRaw},
		{"Deductions", "StandardDeduction", f.StandardDeduction},
		{"Deductions", "TotalDeductions", f.TotalDeductions},
		{"Income", "TaxableIncome", f.TaxableIncome},
	}
	for _, t := range outcome.Taxes {
		rows = append(rows, lineItem{"Tax", t.Regime.String() + "_tax", t.Tax})
	}
	rows = append(rows,
		lineItem{"Tax", "TaxOwed", outcome.TaxOwed},
		lineItem{"TakeHome", "Annual", outcome.TakeHome.Annual},
		lineItem{"TakeHome", "Monthly", outcome.TakeHome.Monthly},
	)
	if outcome.Comparison != nil {
		rows = append(rows, lineItem{"Comparison", "Savings", outcome.Comparison.Savings})
	}

	for _, r := range rows {
		if err := w.Write([]string{r.section, r.item, r.amount.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

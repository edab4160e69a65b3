package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per evaluated regime).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(outcome *domain.SalaryOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "AgeCategory", "GrossAnnual", "TaxableIncome", "IncomeBasis", "Tax", "MarginalRate", "EffectiveRate", "Applied"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, t := range outcome.Taxes {
		row := []string{
			t.Regime.String(),
			outcome.AgeCategory.String(),
			outcome.Figures.GrossAnnual.StringFixed(2),
			outcome.Figures.TaxableIncome.StringFixed(2),
			t.IncomeBasis.StringFixed(2),
			t.Tax.StringFixed(2),
			t.MarginalRate.StringFixed(4),
			t.EffectiveRate.StringFixed(4),
			strconv.FormatBool(t.Regime == outcome.AppliedRegime),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

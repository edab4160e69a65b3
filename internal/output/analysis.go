package output

import (
	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarises which regime applies and what it saves.
type Recommendation struct {
	Regime  domain.Regime
	Tax     decimal.Decimal
	Savings decimal.Decimal
	// PercentageSaved is Savings relative to the dearer regime's tax.
	PercentageSaved decimal.Decimal
	Compared        bool
}

// AnalyzeRegimes extracts the recommendation from an outcome. Without a
// comparison the applied regime is reported with zero savings.
func AnalyzeRegimes(outcome *domain.SalaryOutcome) Recommendation {
	rec := Recommendation{
		Regime:          outcome.AppliedRegime,
		Tax:             outcome.TaxOwed,
		Savings:         decimal.Zero,
		PercentageSaved: decimal.Zero,
	}
	if outcome.Comparison == nil {
		return rec
	}
	rec.Compared = true
	rec.Regime = outcome.Comparison.Cheaper
	rec.Savings = outcome.Comparison.Savings
	dearer := outcome.TaxOwed.Add(rec.Savings)
	if !dearer.IsZero() {
		rec.PercentageSaved = rec.Savings.Div(dearer).Mul(decimalHundred)
	}
	return rec
}

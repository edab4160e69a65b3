package output

import (
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
)

// GenerateAssumptions lists the modelling assumptions behind an outcome.
func GenerateAssumptions(figures domain.DerivedFigures) []string {
	return []string{
		"Monthly salary components are annualised by multiplying by 12",
		fmt.Sprintf("Standard deduction of %s applied under both regimes", FormatCurrency(figures.StandardDeduction)),
		"Housing allowance: standard is 40% of basic pay, metro is 50%",
		"Tax is rounded to whole rupees, half to even",
		"Health and education cess, surcharge and rebates are not included",
	}
}

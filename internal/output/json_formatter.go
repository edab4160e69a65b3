package output

import (
	"encoding/json"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
)

// JSONFormatter serializes the salary outcome as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(outcome *domain.SalaryOutcome) ([]byte, error) {
	return json.MarshalIndent(outcome, "", "  ")
}

package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with a regime comparison chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"paise": FormatCurrencyPaise,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
}).Parse(htmlTemplateSource))

// chartBar is one bar of the tax comparison chart, width in percent of the largest tax.
type chartBar struct {
	Label   string
	Tax     decimal.Decimal
	Width   int
	Applied bool
}

func taxChart(outcome *domain.SalaryOutcome) []chartBar {
	largest := decimal.Zero
	for _, t := range outcome.Taxes {
		largest = decimal.Max(largest, t.Tax)
	}
	bars := make([]chartBar, 0, len(outcome.Taxes))
	for _, t := range outcome.Taxes {
		width := 0
		if largest.IsPositive() {
			width = int(t.Tax.Div(largest).Mul(decimalHundred).Round(0).IntPart())
		}
		bars = append(bars, chartBar{
			Label:   t.Regime.Label(),
			Tax:     t.Tax,
			Width:   width,
			Applied: t.Regime == outcome.AppliedRegime,
		})
	}
	return bars
}

func (h HTMLFormatter) Format(outcome *domain.SalaryOutcome) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.SalaryOutcome
		Recommendation Recommendation
		Assumptions    []string
		Chart          []chartBar
	}{outcome, AnalyzeRegimes(outcome), GenerateAssumptions(outcome.Figures), taxChart(outcome)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

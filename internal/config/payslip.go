package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	money "github.com/paycalc/salary-tax-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PayslipImport is the result of reading a payslip document.
type PayslipImport struct {
	Inputs domain.SalaryInputs
	// Ignored lists labels that did not match any salary component.
	Ignored []string
}

// payslipAliases maps normalised payslip labels to salary input fields.
var payslipAliases = map[string]string{
	"basic":                    "basic_pay",
	"basicpay":                 "basic_pay",
	"basicsalary":              "basic_pay",
	"hra":                      "housing_allowance",
	"houserentallowance":       "housing_allowance",
	"housingallowance":         "housing_allowance",
	"special":                  "special_allowance",
	"specialallowance":         "special_allowance",
	"bonus":                    "bonus",
	"variablepay":              "bonus",
	"bonusvariablepay":         "bonus",
	"other":                    "other_income",
	"otherincome":              "other_income",
	"otherallowance":           "other_income",
	"epf":                      "retirement_fund",
	"pf":                       "retirement_fund",
	"providentfund":            "retirement_fund",
	"epfdeduction":             "retirement_fund",
	"employeeprovidentfund":    "retirement_fund",
	"retirementfund":           "retirement_fund",
	"pt":                       "professional_tax",
	"proftax":                  "professional_tax",
	"professionaltax":          "professional_tax",
	"professionaltaxdeduction": "professional_tax",
}

func salaryField(s *domain.SalaryInputs, name string) *decimal.Decimal {
	switch name {
	case "basic_pay":
		return &s.BasicPay
	case "housing_allowance":
		return &s.HousingAllowance
	case "special_allowance":
		return &s.SpecialAllowance
	case "bonus":
		return &s.Bonus
	case "other_income":
		return &s.OtherIncome
	case "retirement_fund":
		return &s.RetirementFund
	case "professional_tax":
		return &s.ProfessionalTax
	}
	return nil
}

func normaliseLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LoadPayslipCSV reads a payslip CSV file.
func (ip *InputParser) LoadPayslipCSV(filename string) (*PayslipImport, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open payslip %s: %w", filename, err)
	}
	defer f.Close()
	return ParsePayslipCSV(f)
}

// ParsePayslipCSV reads monthly amounts from a two-column CSV of
// component,amount rows. An optional header row is skipped, repeated
// components are summed and unknown labels are collected in Ignored.
// The housing allowance is always taken as listed.
func ParsePayslipCSV(r io.Reader) (*PayslipImport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	out := &PayslipImport{Inputs: domain.SalaryInputs{HousingAllowanceMode: domain.HousingManual}}
	matched := 0
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("payslip line %d: %w", line, err)
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: payslip line %d: expected component,amount", domain.ErrInvalidInput, line)
		}

		label := strings.TrimSpace(record[0])
		if line == 1 && isHeader(label, record[1]) {
			continue
		}
		field, ok := payslipAliases[normaliseLabel(label)]
		if !ok {
			out.Ignored = append(out.Ignored, label)
			continue
		}
		amount, err := money.NewMoneyFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: payslip line %d: %q is not a number", domain.ErrInvalidInput, line, record[1])
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: payslip line %d: %s cannot be negative", domain.ErrInvalidInput, line, label)
		}
		target := salaryField(&out.Inputs, field)
		*target = target.Add(amount.Decimal)
		matched++
	}

	if matched == 0 {
		return nil, fmt.Errorf("%w: payslip contains no recognised salary components", domain.ErrInvalidInput)
	}
	return out, nil
}

func isHeader(label, amount string) bool {
	if _, err := money.NewMoneyFromString(amount); err == nil {
		return false
	}
	switch normaliseLabel(label) {
	case "component", "field", "item", "description", "earning", "earnings", "name":
		return true
	}
	return false
}

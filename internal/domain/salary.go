package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HousingAllowanceMode controls how the monthly housing allowance is obtained.
type HousingAllowanceMode string

const (
	// HousingManual uses the supplied HousingAllowance as is.
	HousingManual HousingAllowanceMode = "manual"
	// HousingStandard computes the allowance as 40% of basic pay.
	HousingStandard HousingAllowanceMode = "standard"
	// HousingMetro computes the allowance as 50% of basic pay (metro cities).
	HousingMetro HousingAllowanceMode = "metro"
)

// Valid reports whether m is a recognised mode. The empty mode means manual.
func (m HousingAllowanceMode) Valid() bool {
	switch m {
	case "", HousingManual, HousingStandard, HousingMetro:
		return true
	}
	return false
}

// SalaryInputs holds the monthly salary components and deductions.
type SalaryInputs struct {
	BasicPay         decimal.Decimal `yaml:"basic_pay" json:"basic_pay"`
	HousingAllowance decimal.Decimal `yaml:"housing_allowance" json:"housing_allowance"`
	SpecialAllowance decimal.Decimal `yaml:"special_allowance" json:"special_allowance"`
	Bonus            decimal.Decimal `yaml:"bonus" json:"bonus"`
	OtherIncome      decimal.Decimal `yaml:"other_income" json:"other_income"`

	RetirementFund  decimal.Decimal `yaml:"retirement_fund" json:"retirement_fund"`
	ProfessionalTax decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`

	HousingAllowanceMode HousingAllowanceMode `yaml:"housing_allowance_mode,omitempty" json:"housing_allowance_mode,omitempty"`
}

// Validate rejects negative amounts and unknown housing allowance modes.
func (s SalaryInputs) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic pay", s.BasicPay},
		{"housing allowance", s.HousingAllowance},
		{"special allowance", s.SpecialAllowance},
		{"bonus", s.Bonus},
		{"other income", s.OtherIncome},
		{"retirement fund contribution", s.RetirementFund},
		{"professional tax", s.ProfessionalTax},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative (got %s)", ErrInvalidInput, f.name, f.value.String())
		}
	}
	if !s.HousingAllowanceMode.Valid() {
		return fmt.Errorf("%w: housing allowance mode %q (expected manual, standard or metro)", ErrInvalidInput, s.HousingAllowanceMode)
	}
	return nil
}

// IncomeComponents returns the monthly income fields in display order.
func (s SalaryInputs) IncomeComponents() []decimal.Decimal {
	return []decimal.Decimal{s.BasicPay, s.HousingAllowance, s.SpecialAllowance, s.Bonus, s.OtherIncome}
}

// DeductionComponents returns the monthly cash deductions.
func (s SalaryInputs) DeductionComponents() []decimal.Decimal {
	return []decimal.Decimal{s.RetirementFund, s.ProfessionalTax}
}

// DerivedFigures are the annual amounts computed from SalaryInputs.
type DerivedFigures struct {
	MonthlyHousingAllowance decimal.Decimal `json:"monthly_housing_allowance"`
	GrossAnnual             decimal.Decimal `json:"gross_annual"`
	AnnualDeductionsRaw     decimal.Decimal `json:"annual_deductions_raw"`
	StandardDeduction       decimal.Decimal `json:"standard_deduction"`
	TotalDeductions         decimal.Decimal `json:"total_deductions"`
	TaxableIncome           decimal.Decimal `json:"taxable_income"`
}

// RegimeTax is the tax computed under one regime.
type RegimeTax struct {
	Regime        Regime          `json:"regime"`
	IncomeBasis   decimal.Decimal `json:"income_basis"`
	Tax           decimal.Decimal `json:"tax"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// RegimeComparison is present only when both regimes were evaluated.
type RegimeComparison struct {
	Cheaper Regime          `json:"cheaper"`
	Savings decimal.Decimal `json:"savings"`
}

// TakeHome is gross income minus tax owed minus cash deductions.
type TakeHome struct {
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
}

// SalaryOutcome is the complete result of one derivation.
type SalaryOutcome struct {
	AgeCategory   AgeCategory       `json:"age_category"`
	Selection     RegimeSelection   `json:"selection"`
	Figures       DerivedFigures    `json:"figures"`
	Taxes         []RegimeTax       `json:"taxes"`
	AppliedRegime Regime            `json:"applied_regime"`
	TaxOwed       decimal.Decimal   `json:"tax_owed"`
	Comparison    *RegimeComparison `json:"comparison,omitempty"`
	TakeHome      TakeHome          `json:"take_home"`
}

// TaxFor returns the tax entry for regime r if it was evaluated.
func (o *SalaryOutcome) TaxFor(r Regime) (RegimeTax, bool) {
	for _, t := range o.Taxes {
		if t.Regime == r {
			return t, true
		}
	}
	return RegimeTax{}, false
}

// Configuration is the YAML input document accepted by the CLI.
type Configuration struct {
	Salary      SalaryInputs    `yaml:"salary"`
	AgeCategory AgeCategory     `yaml:"age_category,omitempty"`
	BirthDate   *time.Time      `yaml:"birth_date,omitempty"`
	Regime      RegimeSelection `yaml:"regime,omitempty"`
	// Payslip optionally names a CSV payslip whose values replace Salary.
	Payslip  string          `yaml:"payslip,omitempty"`
	TaxRules *TaxRulesConfig `yaml:"tax_rules,omitempty"`
}

// BracketConfig is one bracket of a configured table. A nil UpTo marks the
// final, unbounded bracket.
type BracketConfig struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"up_to"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// TaxRulesConfig overrides the built-in bracket tables. Empty tables and a nil
// StandardDeduction fall back to the defaults.
type TaxRulesConfig struct {
	StandardDeduction *decimal.Decimal `yaml:"standard_deduction,omitempty"`
	OldRegime         struct {
		Under60 []BracketConfig `yaml:"under_60,omitempty"`
		From60  []BracketConfig `yaml:"60_to_80,omitempty"`
		Over80  []BracketConfig `yaml:"over_80,omitempty"`
	} `yaml:"old_regime,omitempty"`
	NewRegime []BracketConfig `yaml:"new_regime,omitempty"`
}

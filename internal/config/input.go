package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a salary configuration from a YAML file. A relative
// payslip path is resolved against the configuration file's directory.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.Regime == 0 {
		config.Regime = domain.SelectCompareBoth
	}
	if config.Payslip != "" && !filepath.IsAbs(config.Payslip) {
		config.Payslip = filepath.Join(filepath.Dir(filename), config.Payslip)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Salary.Validate(); err != nil {
		return fmt.Errorf("salary: %w", err)
	}

	if config.AgeCategory == 0 && config.BirthDate == nil {
		return fmt.Errorf("%w: age_category or birth_date is required", domain.ErrUnknownAgeCategory)
	}
	if config.AgeCategory != 0 && !config.AgeCategory.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAgeCategory, config.AgeCategory)
	}

	if config.Regime.Regimes() == nil {
		return fmt.Errorf("%w: selection %s", domain.ErrUnknownRegime, config.Regime)
	}

	if config.TaxRules != nil && config.TaxRules.StandardDeduction != nil && config.TaxRules.StandardDeduction.IsNegative() {
		return fmt.Errorf("%w: standard deduction cannot be negative", domain.ErrInvalidInput)
	}

	return nil
}

// ResolveSalaryInputs applies the input precedence rule: values extracted
// from an uploaded payslip replace the manually entered ones when present.
func ResolveSalaryInputs(manual domain.SalaryInputs, uploaded *domain.SalaryInputs) domain.SalaryInputs {
	if uploaded != nil {
		return *uploaded
	}
	return manual
}

// ResolveAgeCategory returns the configured category, or derives it from the
// birth date for the financial year containing at.
func ResolveAgeCategory(config *domain.Configuration, at time.Time) (domain.AgeCategory, error) {
	if config.AgeCategory != 0 {
		if !config.AgeCategory.Valid() {
			return 0, fmt.Errorf("%w: %s", domain.ErrUnknownAgeCategory, config.AgeCategory)
		}
		return config.AgeCategory, nil
	}
	if config.BirthDate == nil {
		return 0, fmt.Errorf("%w: age_category or birth_date is required", domain.ErrUnknownAgeCategory)
	}
	return domain.AgeCategoryFromBirthDate(*config.BirthDate, at)
}

// LoadTaxRulesFile reads bracket table overrides from a YAML file.
func LoadTaxRulesFile(filename string) (*domain.TaxRulesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var rules domain.TaxRulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &rules, nil
}

// CreateExampleConfiguration creates an example configuration: a 50,000
// monthly package with a standard housing allowance, compared across regimes.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Salary: domain.SalaryInputs{
			BasicPay:             decimal.NewFromInt(30000),
			HousingAllowance:     decimal.NewFromInt(12000),
			SpecialAllowance:     decimal.NewFromInt(5000),
			Bonus:                decimal.NewFromInt(2000),
			OtherIncome:          decimal.NewFromInt(1000),
			RetirementFund:       decimal.NewFromInt(1800),
			ProfessionalTax:      decimal.NewFromInt(200),
			HousingAllowanceMode: domain.HousingStandard,
		},
		AgeCategory: domain.AgeUnder60,
		Regime:      domain.SelectCompareBoth,
	}
}

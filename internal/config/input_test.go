package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "salary:\n" +
		"  basic_pay: 30000\n" +
		"  housing_allowance: 12000\n" +
		"  special_allowance: 5000\n" +
		"  bonus: 2000\n" +
		"  other_income: 1000\n" +
		"  retirement_fund: 1800\n" +
		"  professional_tax: 200\n" +
		"  housing_allowance_mode: standard\n" +
		"age_category: \"<60\"\n" +
		"regime: compare\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, "salary.yaml", testConfig))

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.True(t, decimal.NewFromInt(30000).Equal(config.Salary.BasicPay))
	assert.True(t, decimal.NewFromInt(1800).Equal(config.Salary.RetirementFund))
	assert.Equal(t, domain.HousingStandard, config.Salary.HousingAllowanceMode)
	assert.Equal(t, domain.AgeUnder60, config.AgeCategory)
	assert.Equal(t, domain.SelectCompareBoth, config.Regime)
	assert.Nil(t, config.TaxRules)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	testConfig := "salary:\n" +
		"  basic_pay: 40000\n" +
		"birth_date: 1960-02-10\n" +
		"payslip: march.csv\n"

	path := writeTemp(t, "salary.yaml", testConfig)
	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.SelectCompareBoth, config.Regime, "regime defaults to comparing both")
	require.NotNil(t, config.BirthDate)
	assert.Equal(t, 1960, config.BirthDate.Year())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "march.csv"), config.Payslip)
}

func TestLoadFromFile_TaxRules(t *testing.T) {
	testConfig := "salary:\n" +
		"  basic_pay: 40000\n" +
		"age_category: over80\n" +
		"regime: old\n" +
		"tax_rules:\n" +
		"  standard_deduction: 75000\n" +
		"  new_regime:\n" +
		"    - {up_to: 400000, rate: 0}\n" +
		"    - {up_to: null, rate: 0.1}\n"

	config, err := NewInputParser().LoadFromFile(writeTemp(t, "salary.yaml", testConfig))
	require.NoError(t, err)
	assert.Equal(t, domain.AgeOver80, config.AgeCategory)
	assert.Equal(t, domain.SelectOld, config.Regime)
	require.NotNil(t, config.TaxRules)
	require.NotNil(t, config.TaxRules.StandardDeduction)
	assert.True(t, decimal.NewFromInt(75000).Equal(*config.TaxRules.StandardDeduction))
	require.Len(t, config.TaxRules.NewRegime, 2)
	assert.Nil(t, config.TaxRules.NewRegime[1].UpTo)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeTemp(t, "bad.yaml", "salary: [unclosed\n"))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_UnknownEnumValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown age category", "salary:\n  basic_pay: 1\nage_category: ancient\n"},
		{"unknown regime", "salary:\n  basic_pay: 1\nage_category: \"<60\"\nregime: flat\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(writeTemp(t, "salary.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name          string
		modify        func(*domain.Configuration)
		expectedError error
		errorContains string
	}{
		{
			name:   "Example configuration is valid",
			modify: func(*domain.Configuration) {},
		},
		{
			name: "Birth date without category is valid",
			modify: func(c *domain.Configuration) {
				c.AgeCategory = 0
				c.BirthDate = &birth
			},
		},
		{
			name: "Negative basic pay",
			modify: func(c *domain.Configuration) {
				c.Salary.BasicPay = decimal.NewFromInt(-1)
			},
			expectedError: domain.ErrInvalidInput,
			errorContains: "basic pay",
		},
		{
			name: "Missing age information",
			modify: func(c *domain.Configuration) {
				c.AgeCategory = 0
			},
			expectedError: domain.ErrUnknownAgeCategory,
		},
		{
			name: "Out of range age category",
			modify: func(c *domain.Configuration) {
				c.AgeCategory = domain.AgeCategory(9)
			},
			expectedError: domain.ErrUnknownAgeCategory,
		},
		{
			name: "Unset regime selection",
			modify: func(c *domain.Configuration) {
				c.Regime = 0
			},
			expectedError: domain.ErrUnknownRegime,
		},
		{
			name: "Negative standard deduction override",
			modify: func(c *domain.Configuration) {
				negative := decimal.NewFromInt(-5)
				c.TaxRules = &domain.TaxRulesConfig{StandardDeduction: &negative}
			},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name: "Unknown housing mode",
			modify: func(c *domain.Configuration) {
				c.Salary.HousingAllowanceMode = "rural"
			},
			expectedError: domain.ErrInvalidInput,
			errorContains: "housing allowance mode",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tt.modify(config)
			err := parser.ValidateConfiguration(config)
			if tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedError)
			if tt.errorContains != "" {
				assert.Contains(t, err.Error(), tt.errorContains)
			}
		})
	}
}

func TestResolveSalaryInputs(t *testing.T) {
	manual := domain.SalaryInputs{BasicPay: decimal.NewFromInt(10000)}
	uploaded := &domain.SalaryInputs{BasicPay: decimal.NewFromInt(25000), HousingAllowanceMode: domain.HousingManual}

	got := ResolveSalaryInputs(manual, uploaded)
	assert.True(t, decimal.NewFromInt(25000).Equal(got.BasicPay), "uploaded payslip takes precedence")

	got = ResolveSalaryInputs(manual, nil)
	assert.True(t, decimal.NewFromInt(10000).Equal(got.BasicPay))
}

func TestResolveAgeCategory(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sixtyByMarch := time.Date(1966, 3, 15, 0, 0, 0, 0, time.UTC)
	young := time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		config   domain.Configuration
		expected domain.AgeCategory
		wantErr  error
	}{
		{"Explicit category", domain.Configuration{AgeCategory: domain.AgeOver80}, domain.AgeOver80, nil},
		{"Explicit category wins over birth date", domain.Configuration{AgeCategory: domain.AgeUnder60, BirthDate: &sixtyByMarch}, domain.AgeUnder60, nil},
		{"Turns 60 before the financial year ends", domain.Configuration{BirthDate: &sixtyByMarch}, domain.Age60To80, nil},
		{"Young employee", domain.Configuration{BirthDate: &young}, domain.AgeUnder60, nil},
		{"Nothing supplied", domain.Configuration{}, 0, domain.ErrUnknownAgeCategory},
		{"Invalid category", domain.Configuration{AgeCategory: domain.AgeCategory(7)}, 0, domain.ErrUnknownAgeCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAgeCategory(&tt.config, at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadTaxRulesFile(t *testing.T) {
	content := "standard_deduction: 60000\n" +
		"old_regime:\n" +
		"  under_60:\n" +
		"    - {up_to: 300000, rate: 0}\n" +
		"    - {rate: 0.1}\n"
	rules, err := LoadTaxRulesFile(writeTemp(t, "rules.yaml", content))
	require.NoError(t, err)
	require.NotNil(t, rules.StandardDeduction)
	assert.True(t, decimal.NewFromInt(60000).Equal(*rules.StandardDeduction))
	require.Len(t, rules.OldRegime.Under60, 2)
	assert.Nil(t, rules.OldRegime.Under60[1].UpTo)
	assert.Empty(t, rules.NewRegime)

	_, err = LoadTaxRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTaxRulesFile_ZeroStandardDeduction(t *testing.T) {
	rules, err := LoadTaxRulesFile(writeTemp(t, "rules.yaml", "standard_deduction: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, rules.StandardDeduction, "an explicit zero is not treated as unset")
	assert.True(t, rules.StandardDeduction.IsZero())

	rules, err = LoadTaxRulesFile(writeTemp(t, "rules.yaml", "new_regime:\n  - {rate: 0.1}\n"))
	require.NoError(t, err)
	assert.Nil(t, rules.StandardDeduction)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))
	assert.True(t, decimal.NewFromInt(30000).Equal(config.Salary.BasicPay))
	assert.Equal(t, domain.HousingStandard, config.Salary.HousingAllowanceMode)
	assert.Equal(t, domain.SelectCompareBoth, config.Regime)
}

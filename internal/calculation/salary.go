package calculation

import (
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear   = decimal.NewFromInt(12)
	standardHRARate = decimal.NewFromFloat(0.40)
	metroHRARate    = decimal.NewFromFloat(0.50)
)

// SalaryCalculator derives gross income, taxable income, tax and take-home
// pay from monthly salary inputs. It holds no mutable state; one instance may
// serve concurrent callers.
type SalaryCalculator struct {
	Rules  TaxRules
	Logger Logger
}

// NewSalaryCalculator creates a calculator with the built-in tax tables
func NewSalaryCalculator() *SalaryCalculator {
	return NewSalaryCalculatorWithRules(DefaultTaxRules())
}

// NewSalaryCalculatorWithRules creates a calculator with custom tax tables
func NewSalaryCalculatorWithRules(rules TaxRules) *SalaryCalculator {
	return &SalaryCalculator{Rules: rules, Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (sc *SalaryCalculator) SetLogger(l Logger) {
	if l == nil {
		sc.Logger = NopLogger{}
		return
	}
	sc.Logger = l
}

// ResolveHousingAllowance returns the monthly housing allowance, computing it
// from basic pay when the mode asks for it.
func ResolveHousingAllowance(inputs domain.SalaryInputs) decimal.Decimal {
	switch inputs.HousingAllowanceMode {
	case domain.HousingStandard:
		return inputs.BasicPay.Mul(standardHRARate)
	case domain.HousingMetro:
		return inputs.BasicPay.Mul(metroHRARate)
	default:
		return inputs.HousingAllowance
	}
}

// DeriveFigures computes the annual figures of the pipeline's first step.
// Taxable income is clamped at zero.
func (sc *SalaryCalculator) DeriveFigures(inputs domain.SalaryInputs) (domain.DerivedFigures, error) {
	if err := inputs.Validate(); err != nil {
		return domain.DerivedFigures{}, err
	}
	resolved := inputs
	resolved.HousingAllowance = ResolveHousingAllowance(inputs)

	gross := sum(resolved.IncomeComponents()).Mul(monthsPerYear)
	raw := sum(resolved.DeductionComponents()).Mul(monthsPerYear)
	total := raw.Add(sc.Rules.StandardDeduction())
	taxable := decimal.Max(decimal.Zero, gross.Sub(total))

	return domain.DerivedFigures{
		MonthlyHousingAllowance: resolved.HousingAllowance,
		GrossAnnual:             gross,
		AnnualDeductionsRaw:     raw,
		StandardDeduction:       sc.Rules.StandardDeduction(),
		TotalDeductions:         total,
		TaxableIncome:           taxable,
	}, nil
}

// incomeBasis is the amount taxed under regime. Both regimes tax the income
// left after the standard deduction and cash deductions.
func incomeBasis(_ domain.Regime, figures domain.DerivedFigures) decimal.Decimal {
	return figures.TaxableIncome
}

// EvaluateRegime computes tax on income under one regime.
func (sc *SalaryCalculator) EvaluateRegime(income decimal.Decimal, regime domain.Regime, age domain.AgeCategory) (domain.RegimeTax, error) {
	table, err := sc.Rules.TableFor(regime, age)
	if err != nil {
		return domain.RegimeTax{}, err
	}
	tax, err := EvaluateBracketTax(income, table)
	if err != nil {
		return domain.RegimeTax{}, fmt.Errorf("%s regime: %w", regime, err)
	}
	return domain.RegimeTax{
		Regime:        regime,
		IncomeBasis:   income,
		Tax:           tax,
		MarginalRate:  table.MarginalRate(income),
		EffectiveRate: EffectiveRate(tax, income),
	}, nil
}

// Derive runs the full pipeline for one set of inputs.
func (sc *SalaryCalculator) Derive(inputs domain.SalaryInputs, age domain.AgeCategory, selection domain.RegimeSelection) (*domain.SalaryOutcome, error) {
	if !age.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAgeCategory, age)
	}
	regimes := selection.Regimes()
	if regimes == nil {
		return nil, fmt.Errorf("%w: selection %s", domain.ErrUnknownRegime, selection)
	}

	figures, err := sc.DeriveFigures(inputs)
	if err != nil {
		return nil, err
	}
	sc.Logger.Debugf("gross=%s deductions=%s taxable=%s", figures.GrossAnnual, figures.TotalDeductions, figures.TaxableIncome)
	if figures.TotalDeductions.GreaterThan(figures.GrossAnnual) {
		sc.Logger.Warnf("deductions %s exceed gross income %s; taxable income clamped to zero", figures.TotalDeductions, figures.GrossAnnual)
	}

	outcome := &domain.SalaryOutcome{
		AgeCategory: age,
		Selection:   selection,
		Figures:     figures,
	}
	for _, regime := range regimes {
		rt, err := sc.EvaluateRegime(incomeBasis(regime, figures), regime, age)
		if err != nil {
			return nil, err
		}
		sc.Logger.Debugf("%s regime tax=%s marginal=%s", regime, rt.Tax, rt.MarginalRate)
		outcome.Taxes = append(outcome.Taxes, rt)
	}

	applied := outcome.Taxes[0]
	if len(outcome.Taxes) == 2 {
		applied, outcome.Comparison = compareRegimes(outcome.Taxes[0], outcome.Taxes[1])
	}
	outcome.AppliedRegime = applied.Regime
	outcome.TaxOwed = applied.Tax

	annual := figures.GrossAnnual.Sub(outcome.TaxOwed).Sub(figures.AnnualDeductionsRaw)
	outcome.TakeHome = domain.TakeHome{
		Annual:  annual,
		Monthly: annual.Div(monthsPerYear).RoundBank(2),
	}
	if annual.IsNegative() {
		sc.Logger.Warnf("take-home pay is negative (%s): cash deductions exceed gross income", annual)
	}
	return outcome, nil
}

// compareRegimes picks the cheaper regime; on a tie the new regime wins.
func compareRegimes(oldTax, newTax domain.RegimeTax) (domain.RegimeTax, *domain.RegimeComparison) {
	if oldTax.Tax.LessThan(newTax.Tax) {
		return oldTax, &domain.RegimeComparison{Cheaper: domain.RegimeOld, Savings: newTax.Tax.Sub(oldTax.Tax)}
	}
	return newTax, &domain.RegimeComparison{Cheaper: domain.RegimeNew, Savings: oldTax.Tax.Sub(newTax.Tax)}
}

func sum(values []decimal.Decimal) decimal.Decimal {
	return lo.Reduce(values, func(acc decimal.Decimal, v decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(v)
	}, decimal.Zero)
}

package calculation

import (
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. Old regime: age-dependent slabs, 50,000 standard deduction.
//    - Below 60: exemption up to 2.5 lakh
//    - 60 to 80: exemption up to 3 lakh
//    - 80 and above: exemption up to 5 lakh, no 5% slab
//
// 2. New regime: one age-independent table with 3 lakh steps.
//
// 3. No rebates, surcharge or cess are modelled.

// DefaultStandardDeduction is subtracted from gross income before tax.
var DefaultStandardDeduction = decimal.NewFromInt(50000)

var (
	oldRegimeUnder60 = MustBracketTable(UpTo(250000, 0), UpTo(500000, 0.05), UpTo(1000000, 0.20), Above(0.30))
	oldRegime60To80  = MustBracketTable(UpTo(300000, 0), UpTo(500000, 0.05), UpTo(1000000, 0.20), Above(0.30))
	oldRegimeOver80  = MustBracketTable(UpTo(500000, 0), UpTo(1000000, 0.20), Above(0.30))

	newRegime = MustBracketTable(
		UpTo(300000, 0),
		UpTo(600000, 0.05),
		UpTo(900000, 0.10),
		UpTo(1200000, 0.15),
		UpTo(1500000, 0.20),
		Above(0.30),
	)
)

// TaxRules bundles the bracket tables and the standard deduction. Values are
// immutable once built and safe to share between goroutines.
type TaxRules struct {
	standardDeduction decimal.Decimal
	oldRegime         [3]BracketTable // indexed by AgeCategory-1
	newRegime         BracketTable
}

// DefaultTaxRules returns the built-in tables.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		standardDeduction: DefaultStandardDeduction,
		oldRegime:         [3]BracketTable{oldRegimeUnder60, oldRegime60To80, oldRegimeOver80},
		newRegime:         newRegime,
	}
}

// NewTaxRules builds rules from configuration, falling back to the defaults
// for any table or deduction left unset. A zero standard deduction is kept.
func NewTaxRules(config domain.TaxRulesConfig) (TaxRules, error) {
	rules := DefaultTaxRules()

	if sd := config.StandardDeduction; sd != nil {
		if sd.IsNegative() {
			return TaxRules{}, fmt.Errorf("%w: standard deduction cannot be negative", domain.ErrInvalidInput)
		}
		rules.standardDeduction = *sd
	}

	overrides := []struct {
		name   string
		cfg    []domain.BracketConfig
		target *BracketTable
	}{
		{"old_regime.under_60", config.OldRegime.Under60, &rules.oldRegime[0]},
		{"old_regime.60_to_80", config.OldRegime.From60, &rules.oldRegime[1]},
		{"old_regime.over_80", config.OldRegime.Over80, &rules.oldRegime[2]},
		{"new_regime", config.NewRegime, &rules.newRegime},
	}
	for _, o := range overrides {
		if len(o.cfg) == 0 {
			continue
		}
		table, err := NewBracketTableFromConfig(o.cfg)
		if err != nil {
			return TaxRules{}, fmt.Errorf("%s: %w", o.name, err)
		}
		*o.target = table
	}
	return rules, nil
}

// StandardDeduction returns the annual standard deduction.
func (r TaxRules) StandardDeduction() decimal.Decimal { return r.standardDeduction }

// TableFor returns the table for regime and, for the old regime, age.
func (r TaxRules) TableFor(regime domain.Regime, age domain.AgeCategory) (BracketTable, error) {
	switch regime {
	case domain.RegimeOld:
		if !age.Valid() {
			return BracketTable{}, fmt.Errorf("%w: %s", domain.ErrUnknownAgeCategory, age)
		}
		return r.oldRegime[age-1], nil
	case domain.RegimeNew:
		return r.newRegime, nil
	default:
		return BracketTable{}, fmt.Errorf("%w: %s", domain.ErrUnknownRegime, regime)
	}
}

// NamedTable pairs a table with the regime and age it applies to.
type NamedTable struct {
	Regime      domain.Regime       `json:"regime"`
	AgeCategory *domain.AgeCategory `json:"age_category,omitempty"`
	Brackets    BracketTable        `json:"brackets"`
}

// Name is a short label such as "old <60" or "new".
func (n NamedTable) Name() string {
	if n.AgeCategory == nil {
		return n.Regime.String()
	}
	return n.Regime.String() + " " + n.AgeCategory.String()
}

// Tables lists every table in the rule set, old regime first.
func (r TaxRules) Tables() []NamedTable {
	tables := lo.Map(domain.AgeCategories, func(age domain.AgeCategory, _ int) NamedTable {
		return NamedTable{Regime: domain.RegimeOld, AgeCategory: lo.ToPtr(age), Brackets: r.oldRegime[age-1]}
	})
	return append(tables, NamedTable{Regime: domain.RegimeNew, Brackets: r.newRegime})
}

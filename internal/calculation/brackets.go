package calculation

import (
	"encoding/json"
	"fmt"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Bracket is one slab of a progressive table: income up to UpperBound is
// taxed at Rate. The final bracket of every table is Unbounded.
type Bracket struct {
	UpperBound decimal.Decimal
	Unbounded  bool
	Rate       decimal.Decimal
}

// UpTo builds a bounded bracket.
func UpTo(upper int64, rate float64) Bracket {
	return Bracket{UpperBound: decimal.NewFromInt(upper), Rate: decimal.NewFromFloat(rate)}
}

// Above builds the final, unbounded bracket.
func Above(rate float64) Bracket {
	return Bracket{Unbounded: true, Rate: decimal.NewFromFloat(rate)}
}

// BracketTable is a validated, immutable bracket sequence covering [0, ∞).
// The zero value is not usable; construct with NewBracketTable.
type BracketTable struct {
	brackets []Bracket
}

// NewBracketTable validates brackets and returns an immutable table.
// Bounds must be positive and strictly increasing, rates must lie in [0, 1]
// and only the last bracket may (and must) be unbounded.
func NewBracketTable(brackets ...Bracket) (BracketTable, error) {
	if len(brackets) == 0 {
		return BracketTable{}, fmt.Errorf("%w: no brackets", domain.ErrInvalidTable)
	}
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return BracketTable{}, fmt.Errorf("%w: bracket %d rate %s outside [0, 1]", domain.ErrInvalidTable, i, b.Rate.String())
		}
		last := i == len(brackets)-1
		if b.Unbounded {
			if !last {
				return BracketTable{}, fmt.Errorf("%w: bracket %d is unbounded but not last", domain.ErrInvalidTable, i)
			}
			continue
		}
		if last {
			return BracketTable{}, fmt.Errorf("%w: last bracket must be unbounded", domain.ErrInvalidTable)
		}
		if !b.UpperBound.GreaterThan(prev) {
			return BracketTable{}, fmt.Errorf("%w: bracket %d bound %s does not exceed %s", domain.ErrInvalidTable, i, b.UpperBound.String(), prev.String())
		}
		prev = b.UpperBound
	}
	return BracketTable{brackets: append([]Bracket(nil), brackets...)}, nil
}

// MustBracketTable is NewBracketTable for static tables; it panics on error.
func MustBracketTable(brackets ...Bracket) BracketTable {
	t, err := NewBracketTable(brackets...)
	if err != nil {
		panic(err)
	}
	return t
}

// Brackets returns a copy of the table's brackets.
func (t BracketTable) Brackets() []Bracket {
	return append([]Bracket(nil), t.brackets...)
}

// Len returns the number of brackets.
func (t BracketTable) Len() int { return len(t.brackets) }

// MarginalRate returns the rate applied to the last unit of income.
func (t BracketTable) MarginalRate(income decimal.Decimal) decimal.Decimal {
	for _, b := range t.brackets {
		if b.Unbounded || income.LessThanOrEqual(b.UpperBound) {
			return b.Rate
		}
	}
	return decimal.Zero
}

// MarshalJSON renders the table as [{"up_to": "250000", "rate": "0"}, ...]
// with a null bound for the unbounded bracket.
func (t BracketTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Config())
}

// Config converts the table back to its configuration form.
func (t BracketTable) Config() []domain.BracketConfig {
	out := make([]domain.BracketConfig, 0, len(t.brackets))
	for _, b := range t.brackets {
		bc := domain.BracketConfig{Rate: b.Rate}
		if !b.Unbounded {
			upper := b.UpperBound
			bc.UpTo = &upper
		}
		out = append(out, bc)
	}
	return out
}

// NewBracketTableFromConfig builds a table from configured brackets.
func NewBracketTableFromConfig(cfg []domain.BracketConfig) (BracketTable, error) {
	brackets := make([]Bracket, 0, len(cfg))
	for _, bc := range cfg {
		if bc.UpTo == nil {
			brackets = append(brackets, Bracket{Unbounded: true, Rate: bc.Rate})
			continue
		}
		brackets = append(brackets, Bracket{UpperBound: *bc.UpTo, Rate: bc.Rate})
	}
	return NewBracketTable(brackets...)
}

// EvaluateBracketTax computes progressive tax on income, rounded to a whole
// rupee with round-half-to-even.
func EvaluateBracketTax(income decimal.Decimal, table BracketTable) (decimal.Decimal, error) {
	tax, err := bracketTax(income, table)
	if err != nil {
		return decimal.Zero, err
	}
	return tax.RoundBank(0), nil
}

// bracketTax walks the brackets in ascending order. Each bracket fully below
// income contributes its whole width; the bracket containing income
// contributes the remainder and ends the walk.
func bracketTax(income decimal.Decimal, table BracketTable) (decimal.Decimal, error) {
	if len(table.brackets) == 0 {
		return decimal.Zero, fmt.Errorf("%w: table has no brackets", domain.ErrInvalidTable)
	}
	if income.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", domain.ErrInvalidIncome, income.String())
	}

	tax := decimal.Zero
	prev := decimal.Zero
	for _, b := range table.brackets {
		if !b.Unbounded && income.GreaterThan(b.UpperBound) {
			tax = tax.Add(b.UpperBound.Sub(prev).Mul(b.Rate))
			prev = b.UpperBound
			continue
		}
		tax = tax.Add(income.Sub(prev).Mul(b.Rate))
		break
	}
	return tax, nil
}

// EffectiveRate returns tax as a fraction of income to four places, or zero
// when income is zero.
func EffectiveRate(tax, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return tax.Div(income).Round(4)
}

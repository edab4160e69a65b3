package calculation

import (
	"testing"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func allTables() map[string]BracketTable {
	out := map[string]BracketTable{}
	for _, nt := range DefaultTaxRules().Tables() {
		out[nt.Name()] = nt.Brackets
	}
	return out
}

// TestEvaluateBracketTax checks the worked examples for each table
func TestEvaluateBracketTax(t *testing.T) {
	tests := []struct {
		name        string
		table       BracketTable
		income      decimal.Decimal
		expectedTax decimal.Decimal
		description string
	}{
		{
			name:        "Old regime under 60, 8 lakh",
			table:       oldRegimeUnder60,
			income:      dec("800000"),
			expectedTax: dec("72500"),
			description: "250000*0.05 + 300000*0.20",
		},
		{
			name:        "Old regime over 80, 12 lakh",
			table:       oldRegimeOver80,
			income:      dec("1200000"),
			expectedTax: dec("160000"),
			description: "500000*0.20 + 200000*0.30",
		},
		{
			name:        "New regime, 10 lakh",
			table:       newRegime,
			income:      dec("1000000"),
			expectedTax: dec("60000"),
			description: "15000 + 30000 + 100000*0.15",
		},
		{
			name:        "New regime, 13 lakh",
			table:       newRegime,
			income:      dec("1300000"),
			expectedTax: dec("110000"),
			description: "15000 + 30000 + 45000 + 100000*0.20",
		},
		{
			name:        "Old regime 60 to 80, inside exemption",
			table:       oldRegime60To80,
			income:      dec("290000"),
			expectedTax: decimal.Zero,
			description: "Below the 3 lakh zero-rate slab",
		},
		{
			name:        "Old regime under 60, exactly on a boundary",
			table:       oldRegimeUnder60,
			income:      dec("500000"),
			expectedTax: dec("12500"),
			description: "Boundary income stops in the lower bracket",
		},
		{
			name:        "New regime, top bracket",
			table:       newRegime,
			income:      dec("2000000"),
			expectedTax: dec("300000"),
			description: "15000+30000+45000+60000 + 500000*0.30",
		},
		{
			name:        "Scenario taxable income under new regime",
			table:       newRegime,
			income:      dec("526000"),
			expectedTax: dec("11300"),
			description: "226000*0.05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := EvaluateBracketTax(tt.income, tt.table)
			require.NoError(t, err)
			assert.True(t, tt.expectedTax.Equal(tax), "%s: expected %s, got %s", tt.description, tt.expectedTax, tax)
		})
	}
}

func TestEvaluateBracketTaxRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		income string
		want   string
	}{
		{"300010", "0"}, // 0.5
		{"300030", "2"}, // 1.5
		{"300050", "2"}, // 2.5
		{"300070", "4"}, // 3.5
		{"300012", "1"}, // 0.6
	}
	for _, tt := range tests {
		tax, err := EvaluateBracketTax(dec(tt.income), newRegime)
		require.NoError(t, err)
		assert.True(t, dec(tt.want).Equal(tax), "income %s: got %s want %s", tt.income, tax, tt.want)
	}
}

func TestEvaluateBracketTaxZeroFloor(t *testing.T) {
	for name, table := range allTables() {
		tax, err := EvaluateBracketTax(decimal.Zero, table)
		require.NoError(t, err, name)
		assert.True(t, tax.IsZero(), "%s: tax on zero income should be zero, got %s", name, tax)
	}
}

func TestEvaluateBracketTaxBelowFirstPositiveRate(t *testing.T) {
	for name, table := range allTables() {
		first := table.Brackets()[0]
		require.True(t, first.Rate.IsZero(), name)
		for _, income := range []decimal.Decimal{dec("1"), first.UpperBound.Div(decimal.NewFromInt(2)), first.UpperBound.Sub(dec("0.01")), first.UpperBound} {
			tax, err := EvaluateBracketTax(income, table)
			require.NoError(t, err)
			assert.True(t, tax.IsZero(), "%s: income %s should be untaxed", name, income)
		}
	}
}

func TestEvaluateBracketTaxMonotonic(t *testing.T) {
	for name, table := range allTables() {
		prev := decimal.Zero
		for income := int64(0); income <= 2500000; income += 12500 {
			tax, err := EvaluateBracketTax(decimal.NewFromInt(income), table)
			require.NoError(t, err)
			assert.True(t, tax.GreaterThanOrEqual(prev), "%s: tax decreased at %d", name, income)
			prev = tax
		}
	}
}

// TestBracketTaxContinuity checks that at each boundary the tax approaches the
// same value from both sides, with slopes equal to the adjoining rates.
func TestBracketTaxContinuity(t *testing.T) {
	delta := dec("0.01")
	for name, table := range allTables() {
		brackets := table.Brackets()
		for i, b := range brackets {
			if b.Unbounded {
				continue
			}
			at, err := bracketTax(b.UpperBound, table)
			require.NoError(t, err)
			below, err := bracketTax(b.UpperBound.Sub(delta), table)
			require.NoError(t, err)
			above, err := bracketTax(b.UpperBound.Add(delta), table)
			require.NoError(t, err)

			assert.True(t, at.Sub(below).Equal(delta.Mul(b.Rate)), "%s: left slope at %s", name, b.UpperBound)
			assert.True(t, above.Sub(at).Equal(delta.Mul(brackets[i+1].Rate)), "%s: right slope at %s", name, b.UpperBound)
		}
	}
}

func TestEvaluateBracketTaxErrors(t *testing.T) {
	_, err := EvaluateBracketTax(dec("-1"), newRegime)
	assert.ErrorIs(t, err, domain.ErrInvalidIncome)

	_, err = EvaluateBracketTax(dec("100"), BracketTable{})
	assert.ErrorIs(t, err, domain.ErrInvalidTable)
}

func TestNewBracketTableValidation(t *testing.T) {
	tests := []struct {
		name     string
		brackets []Bracket
	}{
		{"Empty", nil},
		{"Last bracket bounded", []Bracket{UpTo(100, 0), UpTo(200, 0.1)}},
		{"Unbounded in the middle", []Bracket{UpTo(100, 0), Above(0.1), Above(0.2)}},
		{"Bounds not increasing", []Bracket{UpTo(200, 0), UpTo(200, 0.1), Above(0.2)}},
		{"Bounds decreasing", []Bracket{UpTo(300, 0), UpTo(200, 0.1), Above(0.2)}},
		{"Zero first bound", []Bracket{UpTo(0, 0), Above(0.2)}},
		{"Negative rate", []Bracket{UpTo(100, -0.05), Above(0.2)}},
		{"Rate above one", []Bracket{UpTo(100, 0), Above(1.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBracketTable(tt.brackets...)
			assert.ErrorIs(t, err, domain.ErrInvalidTable)
		})
	}

	table, err := NewBracketTable(Above(0.1))
	require.NoError(t, err)
	tax, err := EvaluateBracketTax(dec("1000"), table)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(tax))

	assert.Panics(t, func() { MustBracketTable(UpTo(100, 0)) })
}

func TestBracketTableIsImmutable(t *testing.T) {
	brackets := []Bracket{UpTo(100, 0), Above(0.5)}
	table := MustBracketTable(brackets...)
	brackets[1].Rate = decimal.Zero

	got := table.Brackets()
	got[0].Rate = decimal.NewFromInt(1)

	tax, err := EvaluateBracketTax(dec("200"), table)
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(tax))
}

func TestMarginalAndEffectiveRate(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(oldRegimeUnder60.MarginalRate(dec("250000"))))
	assert.True(t, dec("0.05").Equal(oldRegimeUnder60.MarginalRate(dec("250001"))))
	assert.True(t, dec("0.2").Equal(oldRegimeUnder60.MarginalRate(dec("800000"))))
	assert.True(t, dec("0.3").Equal(newRegime.MarginalRate(dec("90000000"))))

	assert.True(t, dec("0.11").Equal(EffectiveRate(dec("110000"), dec("1000000"))))
	assert.True(t, EffectiveRate(dec("5"), decimal.Zero).IsZero())
}

func TestBracketTableConfigRoundTrip(t *testing.T) {
	for name, table := range allTables() {
		rebuilt, err := NewBracketTableFromConfig(table.Config())
		require.NoError(t, err, name)
		assert.Equal(t, table.Len(), rebuilt.Len())
		for _, income := range []string{"0", "275000", "777777", "3000000"} {
			a, _ := EvaluateBracketTax(dec(income), table)
			b, _ := EvaluateBracketTax(dec(income), rebuilt)
			assert.True(t, a.Equal(b), "%s at %s", name, income)
		}
	}

	b, err := oldRegimeOver80.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"up_to":"500000","rate":"0"},{"up_to":"1000000","rate":"0.2"},{"up_to":null,"rate":"0.3"}]`, string(b))
}

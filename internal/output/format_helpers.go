package output

import (
	money "github.com/paycalc/salary-tax-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats an amount in whole rupees with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatCurrencyPaise is FormatCurrency with two decimal places.
func FormatCurrencyPaise(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatPaise()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
// The value is expected in percentage units, not as a fraction.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.05) as a percentage (5.00%).
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

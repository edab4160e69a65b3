package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a rupee amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromInt creates a new Money instance from a whole rupee amount
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses an amount, tolerating a leading rupee sign and
// thousands separators ("₹1,20,000.50").
func NewMoneyFromString(value string) (Money, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to whole rupees using banker's rounding (half to even)
func (m Money) Round() Money {
	return Money{m.Decimal.RoundBank(0)}
}

// RoundPaise rounds to two decimal places using banker's rounding
func (m Money) RoundPaise() Money {
	return Money{m.Decimal.RoundBank(2)}
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount in whole rupees with Indian digit grouping
// (last three digits, then pairs): ₹12,34,567.
func (m Money) Format() string {
	s := m.Round().StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + "₹" + groupIndian(s)
}

// FormatPaise is Format with two decimal places.
func (m Money) FormatPaise() string {
	s := m.RoundPaise().StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

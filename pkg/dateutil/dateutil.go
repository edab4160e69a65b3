package dateutil

import (
	"fmt"
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// FinancialYearStart returns April 1 of the financial year containing date.
// The Indian financial year runs from April 1 to March 31.
func FinancialYearStart(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, date.Location())
}

// FinancialYearEnd returns March 31 of the financial year containing date.
func FinancialYearEnd(date time.Time) time.Time {
	start := FinancialYearStart(date)
	return time.Date(start.Year()+1, time.March, 31, 0, 0, 0, 0, date.Location())
}

// FinancialYearLabel formats the financial year containing date as "2025-26".
func FinancialYearLabel(date time.Time) string {
	start := FinancialYearStart(date).Year()
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// AgeDuringFinancialYear returns the highest age reached within the financial
// year containing date, which is the age on its last day.
func AgeDuringFinancialYear(birthDate, date time.Time) int {
	return Age(birthDate, FinancialYearEnd(date))
}

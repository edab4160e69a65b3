package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/paycalc/salary-tax-calculator/pkg/dateutil"
)

// AgeCategory selects the old-regime bracket table. The zero value is unset.
type AgeCategory int

const (
	AgeUnder60 AgeCategory = iota + 1
	Age60To80
	AgeOver80
)

// AgeCategories lists the recognised categories in ascending age order.
var AgeCategories = []AgeCategory{AgeUnder60, Age60To80, AgeOver80}

func (a AgeCategory) String() string {
	switch a {
	case AgeUnder60:
		return "<60"
	case Age60To80:
		return "60-80"
	case AgeOver80:
		return ">80"
	default:
		return fmt.Sprintf("AgeCategory(%d)", int(a))
	}
}

// Valid reports whether a is one of the recognised categories.
func (a AgeCategory) Valid() bool {
	return a >= AgeUnder60 && a <= AgeOver80
}

// ParseAgeCategory accepts the bracket keys "<60", "60-80" and ">80" as well as
// the descriptive names "under60", "60to80" and "over80".
func ParseAgeCategory(s string) (AgeCategory, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "<60", "under60", "below60":
		return AgeUnder60, nil
	case "60-80", "60to80", "senior":
		return Age60To80, nil
	case ">80", "over80", "80+", "supersenior":
		return AgeOver80, nil
	}
	return 0, fmt.Errorf("%w: %q (expected <60, 60-80 or >80)", ErrUnknownAgeCategory, s)
}

// AgeCategoryFromBirthDate classifies a filer by the age reached during the
// financial year containing at. Eighty and above is >80, sixty and above is 60-80.
func AgeCategoryFromBirthDate(birthDate, at time.Time) (AgeCategory, error) {
	if birthDate.IsZero() || birthDate.After(at) {
		return 0, fmt.Errorf("%w: birth date %s", ErrUnknownAgeCategory, birthDate.Format("2006-01-02"))
	}
	age := dateutil.AgeDuringFinancialYear(birthDate, at)
	switch {
	case age >= 80:
		return AgeOver80, nil
	case age >= 60:
		return Age60To80, nil
	default:
		return AgeUnder60, nil
	}
}

func (a AgeCategory) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAgeCategory, int(a))
	}
	return []byte(a.String()), nil
}

func (a *AgeCategory) UnmarshalText(text []byte) error {
	v, err := ParseAgeCategory(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Regime is one of the two alternative tax policies.
type Regime int

const (
	RegimeOld Regime = iota + 1
	RegimeNew
)

func (r Regime) String() string {
	switch r {
	case RegimeOld:
		return "old"
	case RegimeNew:
		return "new"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// Label is the display name used in reports.
func (r Regime) Label() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return r.String()
	}
}

func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old", "a":
		return RegimeOld, nil
	case "new", "b":
		return RegimeNew, nil
	}
	return 0, fmt.Errorf("%w: %q (expected old or new)", ErrUnknownRegime, s)
}

func (r Regime) MarshalText() ([]byte, error) {
	if r != RegimeOld && r != RegimeNew {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRegime, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Regime) UnmarshalText(text []byte) error {
	v, err := ParseRegime(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// RegimeSelection chooses which regimes the pipeline evaluates.
type RegimeSelection int

const (
	SelectOld RegimeSelection = iota + 1
	SelectNew
	SelectCompareBoth
)

func (s RegimeSelection) String() string {
	switch s {
	case SelectOld:
		return "old"
	case SelectNew:
		return "new"
	case SelectCompareBoth:
		return "compare"
	default:
		return fmt.Sprintf("RegimeSelection(%d)", int(s))
	}
}

// Regimes returns the regimes evaluated for the selection, old first.
func (s RegimeSelection) Regimes() []Regime {
	switch s {
	case SelectOld:
		return []Regime{RegimeOld}
	case SelectNew:
		return []Regime{RegimeNew}
	case SelectCompareBoth:
		return []Regime{RegimeOld, RegimeNew}
	default:
		return nil
	}
}

// ParseRegimeSelection accepts "old", "new" and the compare spellings
// "compare", "compare-both", "both" and "Compare Both".
func ParseRegimeSelection(s string) (RegimeSelection, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), "-")) {
	case "old":
		return SelectOld, nil
	case "new":
		return SelectNew, nil
	case "compare", "compare-both", "both":
		return SelectCompareBoth, nil
	}
	return 0, fmt.Errorf("%w: selection %q (expected old, new or compare)", ErrUnknownRegime, s)
}

func (s RegimeSelection) MarshalText() ([]byte, error) {
	if s.Regimes() == nil {
		return nil, fmt.Errorf("%w: selection %d", ErrUnknownRegime, int(s))
	}
	return []byte(s.String()), nil
}

func (s *RegimeSelection) UnmarshalText(text []byte) error {
	v, err := ParseRegimeSelection(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

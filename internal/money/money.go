// Package money holds fee amounts as integer paise so that dashboard
// totals never accumulate binary floating-point error.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Paise is an amount in hundredths of a rupee.
type Paise int64

// FromRupees converts a backend float amount to paise, rounding to the
// nearest paisa.
func FromRupees(r float64) Paise {
	return Paise(math.Round(r * 100))
}

// ParseRupees parses a form-submitted rupee amount ("1500", "99.99").
// Parsing is exact: integral inputs never pass through a float.
func ParseRupees(s string) (Paise, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}
	// ParseInt would accept a second sign here ("5.-1"), so both parts
	// must be plain digits.
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	// Pad "99.9" to 990 paise
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	p := Paise(w*100 + f)
	if neg {
		p = -p
	}
	return p, nil
}

// Rupees renders the amount with two decimal places ("350.00").
func (p Paise) Rupees() string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s%d.%02d", sign, p/100, p%100)
}

// Float converts back to the float representation the backend wire
// format uses. Exact for any amount below 2^53 paise.
func (p Paise) Float() float64 {
	return float64(p) / 100
}

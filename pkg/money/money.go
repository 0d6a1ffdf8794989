// Package money does exact arithmetic on decimal price strings such as "179.00".
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParseCents converts a decimal string with at most two fractional digits
// into an integer number of cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, ErrInvalidPrice
	}
	if len(frac) > 2 || (hasFrac && frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	f, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	cents := int64(w)*100 + int64(f)
	if neg {
		cents = -cents
	}
	return cents, nil
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Line is anything with a unit price and a quantity.
type Line interface {
	UnitPrice() string
	Units() int
}

// Total sums price*quantity over lines. Unparseable prices count as zero.
func Total[L Line](lines []L) string {
	var sum int64
	for _, l := range lines {
		c, err := ParseCents(l.UnitPrice())
		if err != nil {
			continue
		}
		sum += c * int64(l.Units())
	}
	return FormatCents(sum)
}

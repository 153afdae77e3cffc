// Package format renders money and dates the way the registration flow
// displays them (pt-BR conventions).
package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency renders an amount in cents as Brazilian reais, e.g. 123456 ->
// "R$ 1.234,56".
func Currency(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}
	reais := cents / 100
	rest := cents % 100

	digits := fmt.Sprintf("%d", reais)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), rest)
	if negative {
		return "-" + out
	}
	return out
}

// Date renders a timestamp as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// ISODate converts an ISO yyyy-mm-dd date to dd/mm/yyyy, returning the input
// unchanged when it does not parse.
func ISODate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return Date(t)
}

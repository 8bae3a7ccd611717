package query

import (
	"strings"
)

// The request grammar is deliberately tiny: one predicate shape and one order
// spec. Text that does not match degrades to "not present" instead of an
// error, both engines rely on that permissive contract.

// Predicate is the single supported filter shape, `column = literal`.
type Predicate struct {
	Column  string
	Literal string
}

// ParseFilter splits the filter text around `=`. Anything that does not split
// into exactly two parts is reported as absent (ok=false), never an error.
// Surrounding single or double quotes on the literal are stripped.
func ParseFilter(s string) (Predicate, bool) {
	if strings.TrimSpace(s) == "" {
		return Predicate{}, false
	}
	parts := strings.Split(s, "=")
	if len(parts) != 2 {
		return Predicate{}, false
	}
	return Predicate{
		Column:  strings.TrimSpace(parts[0]),
		Literal: unquote(strings.TrimSpace(parts[1])),
	}, true
}

// Order is the single supported order spec, `column [ASC|DESC]`.
type Order struct {
	Column string
	Desc   bool
}

// ParseOrder reads the sort column and an optional direction suffix. The
// direction keyword is case-insensitive, anything that is not DESC means
// ascending. Empty text is reported as absent.
func ParseOrder(s string) (Order, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Order{}, false
	}
	ord := Order{Column: fields[0]}
	if len(fields) > 1 && strings.EqualFold(fields[1], "desc") {
		ord.Desc = true
	}
	return ord, true
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

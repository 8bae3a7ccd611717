package query

import (
	"strconv"
	"strings"
	"time"
)

const (
	KindNull = iota
	KindText
	KindNumber
	KindTime
)

// Value is a single typed cell. Sheet loading produces only KindText values,
// numeric/temporal meaning is derived lazily via Interpret when a concrete
// type is needed for ordering.
type Value struct {
	Kind int
	Str  string
	Num  float64
	Time time.Time
}

func Null() Value { return Value{Kind: KindNull} }

func Text(s string) Value { return Value{Kind: KindText, Str: s} }

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

func Timestamp(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

func (self Value) IsNull() bool { return self.Kind == KindNull }

// layouts accepted when deriving a timestamp from cell text. Tried in order,
// first match wins.
var timeLayout = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// String returns the textual form of the value. This form is what cross-type
// comparison and sheet export operate on.
func (self Value) String() string {
	switch self.Kind {
	case KindText:
		return self.Str
	case KindNumber:
		return strconv.FormatFloat(self.Num, 'f', -1, 64)
	case KindTime:
		return self.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// Primitive returns the value as a plain Go value for JSON serialization.
func (self Value) Primitive() interface{} {
	switch self.Kind {
	case KindText:
		return self.Str
	case KindNumber:
		return self.Num
	case KindTime:
		return self.Time
	default:
		return nil
	}
}

// Interpret derives a concrete variant from a textual value: timestamp parse
// first, then numeric parse, otherwise the text stays as is. Non-text values
// are already concrete and pass through unchanged.
func (self Value) Interpret() Value {
	if self.Kind != KindText {
		return self
	}
	s := strings.TrimSpace(self.Str)
	for _, layout := range timeLayout {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp(t)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return self
}

// Compare implements the total order over values: null sorts before any
// non-null, equal kinds compare natively, mixed kinds fall back to a
// case-insensitive comparison of their textual forms. Returns <0, 0 or >0.
func Compare(a Value, b Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindText:
			return cmpFold(a.Str, b.Str)
		case KindNumber:
			switch {
			case a.Num < b.Num:
				return -1
			case a.Num > b.Num:
				return 1
			default:
				return 0
			}
		default:
			switch {
			case a.Time.Before(b.Time):
				return -1
			case a.Time.After(b.Time):
				return 1
			default:
				return 0
			}
		}
	}
	return cmpFold(a.String(), b.String())
}

func cmpFold(a string, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

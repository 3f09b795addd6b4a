package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a single cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is an immutable typed scalar. The zero Value is missing.
type Value struct {
	kind  Kind
	num   float64
	i     int64 // exact payload when isInt
	str   string
	isInt bool
}

// Null returns the missing marker.
func Null() Value { return Value{} }

// Number returns a floating-point value. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{kind: KindNumber, num: f}
}

// Int returns an integral numeric value.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), i: i, isInt: true}
}

// Text returns a string value. The empty string is a value, not missing.
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsInt() bool  { return v.kind == KindNumber && v.isInt }

// Float returns the numeric payload. Integers beyond 2^53 are rounded.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the text payload, or "" for non-text values.
func (v Value) Str() string {
	if v.kind != KindText {
		return ""
	}
	return v.str
}

// AsFloat drops the integer flag, keeping the numeric value.
func (v Value) AsFloat() Value {
	if v.kind != KindNumber {
		return v
	}
	return Value{kind: KindNumber, num: v.num}
}

// Int64 returns the exact integer payload of an integral value.
func (v Value) Int64() (int64, bool) {
	if !v.IsInt() {
		return 0, false
	}
	return v.i, true
}

// Equal compares kind and payload. Two missing values are equal, which is
// what duplicate detection needs.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		switch {
		case v.isInt && o.isInt:
			return v.i == o.i
		case v.isInt:
			return exactInt(o.num, v.i)
		case o.isInt:
			return exactInt(v.num, o.i)
		}
		return v.num == o.num
	case KindText:
		return v.str == o.str
	default:
		return true
	}
}

// String renders the value the way it is written to CSV. Missing is "".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		return formatFloat(v.num)
	case KindText:
		return v.str
	default:
		return ""
	}
}

// formatFloat keeps a decimal point so the cell is re-read as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// appendKey writes an unambiguous encoding of v for row hashing.
func (v Value) appendKey(b *strings.Builder) {
	switch v.kind {
	case KindNumber:
		b.WriteByte('n')
		switch {
		case v.isInt:
			b.WriteString(strconv.FormatInt(v.i, 10))
		case v.num == math.Trunc(v.num) && math.Abs(v.num) < 1<<63:
			// integral floats share the integer encoding; -0 folds to 0
			b.WriteString(strconv.FormatInt(int64(v.num), 10))
		default:
			b.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
		}
	case KindText:
		b.WriteByte('s')
		b.WriteString(strconv.Itoa(len(v.str)))
		b.WriteByte(':')
		b.WriteString(v.str)
	default:
		b.WriteByte('~')
	}
	b.WriteByte('|')
}

// exactInt reports whether f holds exactly the integer i.
func exactInt(f float64, i int64) bool {
	if f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return false
	}
	return int64(f) == i
}

package payload

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	Null Kind = iota
	Int
	Float
	Complex
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Int:
		return "int"
	case Float:
		return "float"
	case Complex:
		return "complex"
	case String:
		return "string"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an option value: null, an integer, a float, a complex number or a
// string. The zero Value is null.
type Value struct {
	kind Kind
	i    *big.Int
	f    float64
	c    complex128
	s    string
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// IntValue returns an integer value.
func IntValue(n int64) Value { return Value{kind: Int, i: big.NewInt(n)} }

// BigIntValue returns an integer value holding a copy of n.
func BigIntValue(n *big.Int) Value { return Value{kind: Int, i: new(big.Int).Set(n)} }

// FloatValue returns a float value.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// ComplexValue returns a complex value.
func ComplexValue(c complex128) Value { return Value{kind: Complex, c: c} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// Int returns a copy of the integer held by v.
func (v Value) Int() (*big.Int, bool) {
	if v.kind != Int {
		return nil, false
	}
	return new(big.Int).Set(v.i), true
}

// Int64 returns the integer held by v if it fits in an int64.
func (v Value) Int64() (int64, bool) {
	if v.kind != Int || !v.i.IsInt64() {
		return 0, false
	}
	return v.i.Int64(), true
}

func (v Value) Float() (float64, bool) {
	return v.f, v.kind == Float
}

func (v Value) Complex() (complex128, bool) {
	return v.c, v.kind == Complex
}

// Text returns the string held by v.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == String
}

// Truthy reports whether v is set to something other than null, an empty
// string or zero.
func (v Value) Truthy() bool {
	switch v.kind {
	case Int:
		return v.i.Sign() != 0
	case Float:
		return v.f != 0
	case Complex:
		return v.c != 0
	case String:
		return v.s != ""
	default:
		return false
	}
}

// Equal reports whether both values have the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Int:
		return v.i.Cmp(o.i) == 0
	case Float:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case Complex:
		return v.c == o.c
	case String:
		return v.s == o.s
	default:
		return true
	}
}

// String returns the text used when v is interpolated into a payload, which
// is also the right hand side of a KEY=VALUE assignment that parses back to v
// (strings that look like numbers excepted). Null is the empty string.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return v.i.String()
	case Float:
		return formatFloat(v.f, true)
	case Complex:
		return formatComplex(v.c)
	case String:
		return v.s
	default:
		return ""
	}
}

// formatFloat renders f in its shortest round-tripping form, switching to
// exponent notation outside [1e-4, 1e16). Integral values keep a trailing
// ".0" when pointZero is set.
func formatFloat(f float64, pointZero bool) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	out := strconv.FormatFloat(f, 'f', -1, 64)
	if pointZero && !strings.ContainsAny(out, ".e") {
		out += ".0"
	}
	return out
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	imText := formatFloat(im, false) + "j"
	if re == 0 && !math.Signbit(re) {
		return imText
	}
	if !strings.HasPrefix(imText, "-") {
		imText = "+" + imText
	}
	return "(" + formatFloat(re, false) + imText + ")"
}

package payload

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Assignment is a parsed KEY=VALUE token.
type Assignment struct {
	Key   string
	Value Value
}

// SyntaxError is returned for tokens that can't be parsed as an assignment.
type SyntaxError struct {
	Token string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid assignment %q: %s", e.Token, e.Msg)
}

// ParseAssignment parses a KEY=VALUE token. KEY must be an identifier; the
// value is interpreted by ParseValue.
func ParseAssignment(token string) (Assignment, error) {
	key, text, ok := strings.Cut(token, "=")
	if !ok {
		return Assignment{}, &SyntaxError{Token: token, Msg: "expected KEY=VALUE"}
	}
	if !IsIdentifier(key) {
		return Assignment{}, &SyntaxError{Token: token, Msg: fmt.Sprintf("%q is not a valid name", key)}
	}

	value, err := ParseValue(text)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Token = token
		}
		return Assignment{}, err
	}

	return Assignment{Key: key, Value: value}, nil
}

// IsIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ParseValue interprets the right hand side of an assignment. The empty
// string is null, numeric literals become integers, floats or imaginary
// numbers and everything else is kept verbatim as a string.
func ParseValue(text string) (Value, error) {
	if text == "" {
		return NullValue(), nil
	}

	lit, ok := scanNumber(text)
	if !ok {
		return StringValue(text), nil
	}

	v, err := lit.eval()
	if err != nil {
		return Value{}, &SyntaxError{Token: text, Msg: err.Error()}
	}
	return v, nil
}

type numberForm int

const (
	formInteger numberForm = iota
	formFloat
	formImaginary
)

// numberLiteral is a token that matched the numeric literal shape.
type numberLiteral struct {
	negative bool
	base     int
	form     numberForm
	digits   string // underscores removed, no sign, prefix or imaginary suffix
}

func isDecDigit(c byte) bool { return '0' <= c && c <= '9' }
func isOctDigit(c byte) bool { return '0' <= c && c <= '7' }
func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isHexDigit(c byte) bool {
	return isDecDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// digitPart matches digit (_? digit)* starting at s[i] and returns the index
// just past the match.
func digitPart(s string, i int, isDigit func(byte) bool) (int, bool) {
	if i >= len(s) || !isDigit(s[i]) {
		return i, false
	}
	i++
	for i < len(s) {
		switch {
		case isDigit(s[i]):
			i++
		case s[i] == '_' && i+1 < len(s) && isDigit(s[i+1]):
			i += 2
		default:
			return i, true
		}
	}
	return i, true
}

// scanNumber reports whether the whole of text is a numeric literal.
func scanNumber(text string) (numberLiteral, bool) {
	var lit numberLiteral
	s := text
	if strings.HasPrefix(s, "-") {
		lit.negative = true
		s = s[1:]
	}

	if len(s) > 2 && s[0] == '0' {
		var isDigit func(byte) bool
		switch s[1] {
		case 'x', 'X':
			lit.base, isDigit = 16, isHexDigit
		case 'o', 'O':
			lit.base, isDigit = 8, isOctDigit
		case 'b', 'B':
			lit.base, isDigit = 2, isBinDigit
		}
		if isDigit != nil {
			// A single separator may follow the prefix.
			start := 2
			if s[start] == '_' {
				start++
			}
			end, ok := digitPart(s, start, isDigit)
			if !ok || end != len(s) {
				return lit, false
			}
			lit.digits = strings.ReplaceAll(s[2:], "_", "")
			return lit, true
		}
	}

	lit.base = 10
	i, hasInt := digitPart(s, 0, isDecDigit)
	hasFrac := false
	if i < len(s) && s[i] == '.' {
		lit.form = formFloat
		i, hasFrac = digitPart(s, i+1, isDecDigit)
	}
	if !hasInt && !hasFrac {
		return lit, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		end, ok := digitPart(s, j, isDecDigit)
		if !ok {
			return lit, false
		}
		lit.form = formFloat
		i = end
	}

	digitsEnd := i
	if i < len(s) && (s[i] == 'j' || s[i] == 'J') {
		lit.form = formImaginary
		i++
	}
	if i != len(s) {
		return lit, false
	}

	lit.digits = strings.ReplaceAll(s[:digitsEnd], "_", "")
	return lit, true
}

func (lit numberLiteral) eval() (Value, error) {
	switch lit.form {
	case formInteger:
		if lit.base == 10 && len(lit.digits) > 1 && lit.digits[0] == '0' && strings.Trim(lit.digits, "0") != "" {
			return Value{}, errors.New("leading zeros in decimal integer literals are not permitted; use an 0o prefix for octal integers")
		}
		n, ok := new(big.Int).SetString(lit.digits, lit.base)
		if !ok {
			return Value{}, fmt.Errorf("invalid base %d integer %q", lit.base, lit.digits)
		}
		if lit.negative {
			n.Neg(n)
		}
		return BigIntValue(n), nil

	case formFloat, formImaginary:
		f, err := strconv.ParseFloat(lit.digits, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, err
		}
		if lit.form == formImaginary {
			c := complex(0, f)
			if lit.negative {
				c = -c
			}
			return ComplexValue(c), nil
		}
		if lit.negative {
			f = -f
		}
		return FloatValue(f), nil
	}

	return Value{}, fmt.Errorf("unknown number form %d", lit.form)
}

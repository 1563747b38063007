package payload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultPort is the listener port used when none is given.
const DefaultPort = 4444

// portRule bounds listener ports, 65536 included.
const portRule = "gte=0,lte=65536"

var validate = validator.New()

// ErrPortRange is wrapped by ParsePort for numbers outside the port range.
var ErrPortRange = errors.New("must be between 0 and 65536")

// UnknownOptionError lists assignment keys that don't match any option.
type UnknownOptionError struct {
	Keys []string
}

func (e *UnknownOptionError) Error() string {
	return "unexpected keywords: " + strings.Join(e.Keys, ", ")
}

// Bind matches assignments against g's keyword-only options ignoring case and returns them
// keyed by the declared option names. Later assignments to the same option
// win. Every key that matches nothing is reported in a single
// *UnknownOptionError, in the order first seen.
func Bind(g *Generator, assignments []Assignment) (*OptionSet, error) {
	declared := g.keywordTable()
	out := NewOptionSet()

	var unknown []string
	seen := make(map[string]bool)
	for _, a := range assignments {
		name, ok := declared.Canonical(a.Key)
		if !ok {
			if !seen[a.Key] {
				seen[a.Key] = true
				unknown = append(unknown, a.Key)
			}
			continue
		}
		out.Set(name, a.Value)
	}

	if len(unknown) > 0 {
		return nil, &UnknownOptionError{Keys: unknown}
	}
	return out, nil
}

// ParsePort parses a base 10 listener port in the range [0, 65536].
func ParsePort(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: not a number", text)
	}
	if err := validate.Var(n, portRule); err != nil {
		return 0, fmt.Errorf("invalid port %d: %w", n, ErrPortRange)
	}
	return n, nil
}

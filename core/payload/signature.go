package payload

import "fmt"

// ParamKind describes how an argument is passed to a generator.
type ParamKind int

const (
	// PositionalOrKeyword parameters are passed directly to Call.
	PositionalOrKeyword ParamKind = iota
	// KeywordOnly parameters are the generator's tunable options.
	KeywordOnly
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case KeywordOnly:
		return "keyword-only"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Param describes a single generator parameter.
type Param struct {
	Name       string
	Kind       ParamKind
	Default    Value
	HasDefault bool
}

// Positional declares a positional-or-keyword parameter.
func Positional(name string) Param {
	return Param{Name: name, Kind: PositionalOrKeyword}
}

// Option declares a keyword-only parameter with a default.
func Option(name string, def Value) Param {
	return Param{Name: name, Kind: KeywordOnly, Default: def, HasDefault: true}
}

// RequiredOption declares a keyword-only parameter the caller must supply.
func RequiredOption(name string) Param {
	return Param{Name: name, Kind: KeywordOnly}
}

// Signature is an ordered parameter list.
type Signature []Param

// Lookup returns the parameter with the given name.
func (s Signature) Lookup(name string) (Param, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Validate checks that every parameter has a unique identifier-shaped name
// and a known kind.
func (s Signature) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, p := range s {
		if !IsIdentifier(p.Name) {
			return fmt.Errorf("invalid parameter name %q", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true

		switch p.Kind {
		case PositionalOrKeyword, KeywordOnly:
		default:
			return fmt.Errorf("parameter %q: unknown kind %v", p.Name, p.Kind)
		}
	}
	return nil
}

// Accepts reports whether every marker is declared as a positional-or-keyword
// or keyword-only parameter.
func (s Signature) Accepts(markers ...string) bool {
	for _, marker := range markers {
		p, ok := s.Lookup(marker)
		if !ok {
			return false
		}
		switch p.Kind {
		case PositionalOrKeyword, KeywordOnly:
		default:
			return false
		}
	}
	return true
}

// KeywordDefaults returns the keyword-only parameters that have a default, in
// declaration order.
func (s Signature) KeywordDefaults() *OptionSet {
	out := NewOptionSet()
	for _, p := range s {
		if p.Kind == KeywordOnly && p.HasDefault {
			out.Set(p.Name, p.Default)
		}
	}
	return out
}

// requiredKeywords returns the keyword-only parameters without a default.
func (s Signature) requiredKeywords() []Param {
	var out []Param
	for _, p := range s {
		if p.Kind == KeywordOnly && !p.HasDefault {
			out = append(out, p)
		}
	}
	return out
}

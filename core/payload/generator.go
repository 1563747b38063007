package payload

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// RenderFunc produces a payload. opts holds every keyword-only option of the
// generator with defaults already applied.
type RenderFunc func(lhost string, lport int, opts *OptionSet) (string, error)

// Generator is a payload generating function together with its declared
// parameters.
type Generator struct {
	// Name is the generator's own name, the last segment of its identifier.
	Name string
	// Doc describes the generator, its first line is used as a summary.
	Doc string
	// Params is the declared signature. Discoverable generators declare lhost
	// and lport.
	Params Signature
	// Render is the generator body.
	Render RenderFunc

	defaultsOnce sync.Once
	defaults     *OptionSet

	keywordsOnce sync.Once
	keywords     *OptionSet
}

var errNoRender = errors.New("generator has no render function")

// CallError is returned when a generator is called with options that don't
// match its signature.
type CallError struct {
	Generator string
	Msg       string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Generator, e.Msg)
}

// Summary returns the first line of the generator's documentation.
func (g *Generator) Summary() string {
	doc := strings.TrimSpace(g.Doc)
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = doc[:i]
	}
	return strings.TrimSpace(doc)
}

// Signature returns a copy of the declared parameters, or an error if the
// generator can't be invoked.
func (g *Generator) Signature() (Signature, error) {
	if g.Render == nil {
		return nil, errNoRender
	}
	if err := g.Params.Validate(); err != nil {
		return nil, err
	}
	return append(Signature(nil), g.Params...), nil
}

// keywordDefaults is the memoized set of keyword-only defaults. Callers must
// not modify it.
func (g *Generator) keywordDefaults() *OptionSet {
	g.defaultsOnce.Do(func() {
		g.defaults = g.Params.KeywordDefaults()
	})
	return g.defaults
}

// keywordTable is the memoized set of every keyword-only parameter, required
// ones included, used to match option names. Callers must not modify it.
func (g *Generator) keywordTable() *OptionSet {
	g.keywordsOnce.Do(func() {
		g.keywords = NewOptionSet()
		for _, p := range g.Params {
			if p.Kind == KeywordOnly {
				g.keywords.Set(p.Name, p.Default)
			}
		}
	})
	return g.keywords
}

// Options returns the generator's keyword-only options and their defaults,
// which are exactly the values Call applies when an option is not supplied.
func (g *Generator) Options() *OptionSet {
	return g.keywordDefaults().Clone()
}

// Call renders the payload. Options missing from kwargs take their declared
// defaults; unknown options and missing required ones are errors.
func (g *Generator) Call(lhost string, lport int, kwargs *OptionSet) (string, error) {
	sig, err := g.Signature()
	if err != nil {
		return "", &CallError{Generator: g.Name, Msg: err.Error()}
	}

	for _, name := range kwargs.Names() {
		if p, ok := sig.Lookup(name); !ok || p.Kind != KeywordOnly {
			return "", &CallError{Generator: g.Name, Msg: fmt.Sprintf("unexpected option %q", name)}
		}
	}

	opts := NewOptionSet()
	var missing []string
	for _, p := range sig {
		if p.Kind != KeywordOnly {
			continue
		}
		switch v, ok := kwargs.Get(p.Name); {
		case ok:
			opts.Set(p.Name, v)
		case p.HasDefault:
			opts.Set(p.Name, p.Default)
		default:
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return "", &CallError{Generator: g.Name, Msg: "missing required options: " + strings.Join(missing, ", ")}
	}

	return g.Render(lhost, lport, opts)
}

// Forward calls g with the subset of opts that g declares. Wrapping
// generators use it to invoke their delegates.
func (g *Generator) Forward(lhost string, lport int, opts *OptionSet) (string, error) {
	own := NewOptionSet()
	for _, name := range opts.Names() {
		if p, ok := g.Params.Lookup(name); ok && p.Kind == KeywordOnly {
			v, _ := opts.Get(name)
			own.Set(name, v)
		}
	}
	return g.Call(lhost, lport, own)
}

package payload

import "strings"

// OptionSet is an ordered mapping of option names to values. Setting an
// existing name replaces its value but keeps its position.
type OptionSet struct {
	names  []string
	values map[string]Value

	// folded maps lower-cased names to the first declared name, built on
	// first use and dropped whenever the set changes.
	folded map[string]string
}

// NewOptionSet creates an empty option set.
func NewOptionSet() *OptionSet {
	return &OptionSet{values: make(map[string]Value)}
}

// Set stores a value under name.
func (o *OptionSet) Set(name string, v Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
		o.folded = nil
	}
	o.values[name] = v
}

// Get returns the value stored under name.
func (o *OptionSet) Get(name string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[name]
	return v, ok
}

// Has reports whether name is set.
func (o *OptionSet) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Names returns the option names in order.
func (o *OptionSet) Names() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.names...)
}

func (o *OptionSet) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// Merge copies every option of other into o, in other's order.
func (o *OptionSet) Merge(other *OptionSet) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		o.Set(name, other.values[name])
	}
}

// Clone returns an independent copy of o.
func (o *OptionSet) Clone() *OptionSet {
	out := NewOptionSet()
	out.Merge(o)
	return out
}

// Canonical finds the declared name matching key case-insensitively. When
// several names fold to the same key the first declared one wins.
func (o *OptionSet) Canonical(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	if o.folded == nil {
		o.folded = make(map[string]string, len(o.names))
		for _, name := range o.names {
			lower := strings.ToLower(name)
			if _, ok := o.folded[lower]; !ok {
				o.folded[lower] = name
			}
		}
	}
	name, ok := o.folded[strings.ToLower(key)]
	return name, ok
}

// String returns the text of the named option, or "" when unset or null.
func (o *OptionSet) String(name string) string {
	v, _ := o.Get(name)
	return v.String()
}

// StringOr returns the text of the named option, or fallback when the option
// is unset, null, empty or zero.
func (o *OptionSet) StringOr(name, fallback string) string {
	if v, ok := o.Get(name); ok && v.Truthy() {
		return v.String()
	}
	return fallback
}

// Truthy reports whether the named option is set to a truthy value.
func (o *OptionSet) Truthy(name string) bool {
	v, _ := o.Get(name)
	return v.Truthy()
}

package payload

// Compose returns a generator that exposes the keyword-only options of the
// delegates it wraps as if they were its own.
//
// Delegate defaults are folded in order, later delegates overwriting earlier
// ones, and wrapper's own defaults are applied last so they always win. The
// resulting signature lists wrapper's non keyword-only parameters in their
// declared order, then the merged defaults in fold order, then any keyword-only
// parameters that have no default and stay required.
//
// The returned generator shares wrapper's Render; when called, options the
// caller leaves out are filled from the merged defaults.
func Compose(wrapper *Generator, delegates ...*Generator) *Generator {
	merged := NewOptionSet()
	for _, d := range delegates {
		merged.Merge(d.keywordDefaults())
	}
	merged.Merge(wrapper.Params.KeywordDefaults())

	var params Signature
	for _, p := range wrapper.Params {
		if p.Kind != KeywordOnly {
			params = append(params, p)
		}
	}
	for _, name := range merged.Names() {
		v, _ := merged.Get(name)
		params = append(params, Option(name, v))
	}

	seen := make(map[string]bool)
	for _, sig := range append(delegateParams(delegates), wrapper.Params) {
		for _, p := range sig.requiredKeywords() {
			if merged.Has(p.Name) || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			params = append(params, p)
		}
	}

	return &Generator{
		Name:   wrapper.Name,
		Doc:    wrapper.Doc,
		Params: params,
		Render: wrapper.Render,
	}
}

func delegateParams(delegates []*Generator) []Signature {
	out := make([]Signature, 0, len(delegates)+1)
	for _, d := range delegates {
		out = append(out, d.Params)
	}
	return out
}

package payload

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Root is the namespace prefix stripped from payload identifiers.
const Root = "payloads"

// Markers are the parameters a generator must declare to be discoverable.
var Markers = []string{"lhost", "lport"}

// Entry is a generator registered under a namespace such as
// "payloads/cmd/unix".
type Entry struct {
	Namespace string
	Generator *Generator
}

// registered holds every generator added with Register, in registration order.
var registered []Entry

// Register adds a generator to the namespace table. It's meant to be called
// from init() by packages providing payloads.
func Register(namespace string, g *Generator) {
	registered = append(registered, Entry{Namespace: namespace, Generator: g})
}

// Registry maps payload identifiers to generators. It is not modified after
// Discover returns.
type Registry struct {
	generators map[string]*Generator
	ids        []string
}

// Discover builds a registry from entries. Entries whose signature can't be
// obtained or that don't accept every marker are skipped. If two entries map
// to the same identifier the later one is kept.
func Discover(root string, entries []Entry) *Registry {
	r := &Registry{generators: make(map[string]*Generator)}
	for _, e := range entries {
		if e.Generator == nil {
			continue
		}

		sig, err := e.Generator.Signature()
		if err != nil {
			log.Debug("skipping payload", "namespace", e.Namespace, "name", e.Generator.Name, "err", err)
			continue
		}
		if !sig.Accepts(Markers...) {
			log.Debug("skipping payload without lhost/lport", "namespace", e.Namespace, "name", e.Generator.Name)
			continue
		}

		r.generators[Identifier(root, e.Namespace, e.Generator.Name)] = e.Generator
	}

	for id := range r.generators {
		r.ids = append(r.ids, id)
	}
	sort.Strings(r.ids)
	return r
}

// Identifier joins the namespace, without its root prefix, and the generator
// name with slashes.
func Identifier(root, namespace, name string) string {
	namespace = strings.TrimPrefix(namespace, root)
	parts := strings.FieldsFunc(namespace, func(r rune) bool {
		return r == '/' || r == '.'
	})
	return strings.Join(append(parts, name), "/")
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of every registered payload. It is built on
// first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = Discover(Root, registered)
	})
	return defaultRegistry
}

// Lookup returns the generator with the given identifier.
func (r *Registry) Lookup(id string) (*Generator, bool) {
	g, ok := r.generators[id]
	return g, ok
}

// IDs returns every identifier in lexicographic order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.ids...)
}

func (r *Registry) Len() int {
	return len(r.ids)
}

// Package netif resolves local network interface names to IPv4 addresses so
// users can pass "eth0" or "tun0" where an address is expected.
package netif

import (
	"net"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Lister returns a mapping of interface names to IPv4 addresses.
type Lister func() (map[string]string, error)

// LocalInterfaces returns the first IPv4 address of every interface that is
// up.
func LocalInterfaces() (map[string]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			log.Debug("couldn't list interface addresses", "interface", iface.Name, "err", err)
			continue
		}
		for _, addr := range addrs {
			if ip := ipv4(addr); ip != nil {
				out[iface.Name] = ip.String()
				break
			}
		}
	}
	return out, nil
}

func ipv4(addr net.Addr) net.IP {
	var ip net.IP
	switch a := addr.(type) {
	case *net.IPNet:
		ip = a.IP
	case *net.IPAddr:
		ip = a.IP
	}
	return ip.To4()
}

// Resolver maps interface names and configured aliases to addresses. The
// table is built on first use and kept for the life of the resolver.
type Resolver struct {
	aliases map[string]string
	lister  Lister

	once  sync.Once
	table map[string]string
}

// New creates a resolver over the local interfaces. Aliases take precedence
// over interfaces of the same name.
func New(aliases map[string]string) *Resolver {
	return NewWithLister(aliases, LocalInterfaces)
}

// NewWithLister creates a resolver that enumerates interfaces with lister.
func NewWithLister(aliases map[string]string, lister Lister) *Resolver {
	return &Resolver{aliases: aliases, lister: lister}
}

// Table returns the name to address mapping.
func (r *Resolver) Table() map[string]string {
	r.once.Do(func() {
		r.table = make(map[string]string)
		if r.lister != nil {
			ifaces, err := r.lister()
			if err != nil {
				log.Debug("couldn't list local interfaces", "err", err)
			}
			for name, addr := range ifaces {
				r.table[name] = addr
			}
		}
		for name, addr := range r.aliases {
			r.table[name] = addr
		}
	})
	return r.table
}

// Resolve returns the address for name, or name itself if it isn't a known
// interface or alias.
func (r *Resolver) Resolve(name string) string {
	if addr, ok := r.Table()[name]; ok {
		return addr
	}
	return name
}

// Names returns the known interface and alias names in sorted order.
func (r *Resolver) Names() []string {
	var names []string
	for name := range r.Table() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

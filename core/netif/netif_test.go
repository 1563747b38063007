package netif

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeLister(calls *int) Lister {
	return func() (map[string]string, error) {
		*calls++
		return map[string]string{
			"lo":   "127.0.0.1",
			"tun0": "10.10.14.2",
		}, nil
	}
}

func TestResolver_Resolve(t *testing.T) {
	calls := 0
	r := NewWithLister(map[string]string{"vpn": "10.8.0.1", "lo": "127.0.0.2"}, fakeLister(&calls))

	cases := map[string]struct {
		name     string
		expected string
	}{
		"interface":        {"tun0", "10.10.14.2"},
		"alias":            {"vpn", "10.8.0.1"},
		"alias overrides":  {"lo", "127.0.0.2"},
		"address verbatim": {"192.168.1.5", "192.168.1.5"},
		"unknown verbatim": {"eth9", "eth9"},
		"hostname":         {"attacker.example", "attacker.example"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Resolve(tc.name))
		})
	}

	assert.Equal(t, 1, calls, "interfaces are listed once")
	assert.Equal(t, []string{"lo", "tun0", "vpn"}, r.Names())
}

func TestResolver_ListerFailure(t *testing.T) {
	r := NewWithLister(map[string]string{"vpn": "10.8.0.1"}, func() (map[string]string, error) {
		return nil, errors.New("no ioctl")
	})

	assert.Equal(t, "10.8.0.1", r.Resolve("vpn"))
	assert.Equal(t, "tun0", r.Resolve("tun0"))
}

func TestIPv4(t *testing.T) {
	_, v4net, _ := net.ParseCIDR("10.0.0.5/24")
	v4net.IP = net.ParseIP("10.0.0.5")
	_, v6net, _ := net.ParseCIDR("fe80::1/64")

	assert.Equal(t, "10.0.0.5", ipv4(v4net).String())
	assert.Nil(t, ipv4(v6net))
	assert.Equal(t, "127.0.0.1", ipv4(&net.IPAddr{IP: net.ParseIP("127.0.0.1")}).String())
}

func TestLocalInterfaces(t *testing.T) {
	ifaces, err := LocalInterfaces()
	if err != nil {
		t.Skip("interfaces unavailable:", err)
	}

	for name, addr := range ifaces {
		assert.NotEmpty(t, name)
		assert.NotNil(t, net.ParseIP(addr).To4(), "%s has non-IPv4 address %q", name, addr)
	}
}

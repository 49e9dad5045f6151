package field

import (
	"errors"
	"fmt"
	"strings"

	"inet.af/netaddr"
)

var errZone = errors.New("zoned addresses are not networks")

// specialRange is a class of address space that must not appear in a feed.
type specialRange struct {
	label    string
	prefixes []netaddr.IPPrefix
}

// contains reports whether p lies entirely inside one of the range's prefixes.
func (r specialRange) contains(p netaddr.IPPrefix) bool {
	for _, sp := range r.prefixes {
		if sp.Bits() <= p.Bits() && sp.Contains(p.IP()) {
			return true
		}
	}
	return false
}

// specialRanges is checked in order; the first class containing the prefix
// is reported. Supernets of a special range are public.
var specialRanges = []specialRange{
	{"Link-local", mustPrefixes("169.254.0.0/16", "fe80::/10")},
	{"Loopback", mustPrefixes("127.0.0.0/8", "::1/128")},
	{"Multicast", mustPrefixes("224.0.0.0/4", "ff00::/8")},
	{"Reserved", mustPrefixes(
		"0.0.0.0/8", "192.0.0.0/24", "192.0.2.0/24", "198.51.100.0/24",
		"203.0.113.0/24", "240.0.0.0/4",
		"::/8", "100::/8", "200::/7", "400::/6", "800::/5", "1000::/4",
		"2001:db8::/32", "3fff::/20",
		"4000::/3", "6000::/3", "8000::/3", "a000::/3", "c000::/3",
		"e000::/4", "f000::/5", "f800::/6", "fe00::/9",
	)},
	{"Private", mustPrefixes(
		"10.0.0.0/8", "100.64.0.0/10", "172.16.0.0/12", "192.168.0.0/16",
		"198.18.0.0/15", "fc00::/7",
	)},
}

func mustPrefixes(ss ...string) []netaddr.IPPrefix {
	out := make([]netaddr.IPPrefix, len(ss))
	for i, s := range ss {
		out[i] = netaddr.MustParseIPPrefix(s)
	}
	return out
}

// ParseNetwork parses an IP network in CIDR notation. Host bits are allowed.
// A bare address is read as a single host network.
func ParseNetwork(raw string) (netaddr.IPPrefix, error) {
	if strings.Contains(raw, "/") {
		return netaddr.ParseIPPrefix(raw)
	}
	ip, err := netaddr.ParseIP(raw)
	if err != nil {
		return netaddr.IPPrefix{}, err
	}
	if ip.Zone() != "" {
		return netaddr.IPPrefix{}, errZone
	}
	return netaddr.IPPrefixFrom(ip, ip.BitLen()), nil
}

func parseNetwork(raw string) (any, error) {
	p, err := ParseNetwork(raw)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// networkErrors reports, in order: unparsable input, host bits set, and
// containment in a special-purpose range. noun names the value in messages.
func networkErrors(noun string) Checker {
	return func(raw string) Check {
		p, err := ParseNetwork(raw)
		if err != nil {
			return Default()
		}
		if masked := p.Masked(); masked != p {
			return Custom(fmt.Sprintf("Host bits set, did you mean %s?", masked))
		}
		for _, r := range specialRanges {
			if r.contains(p) {
				return Custom(fmt.Sprintf("%s %s not allowed", r.label, noun))
			}
		}
		return Pass()
	}
}

// Network returns the draft schema's network field.
func Network() *Field {
	return MustNew(Definition{
		Name:      "network",
		ErrorText: "Not a valid IP network",
		Role:      RoleNetwork,
		Errors:    networkErrors("network"),
		Parse:     parseNetwork,
	})
}

// IPPrefix returns the final schema's ip_prefix field.
func IPPrefix() *Field {
	return MustNew(Definition{
		Name:      "ip_prefix",
		ErrorText: "Not a valid IP prefix",
		Role:      RoleNetwork,
		Errors:    networkErrors("IP prefix"),
		Parse:     parseNetwork,
	})
}

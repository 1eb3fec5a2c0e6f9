// Package namespace is the registry of the naming schemes a mapping set can
// be expressed in.
package namespace

import (
	"fmt"
	"strings"
)

// Namespace identifies one naming scheme for JVM symbols.
type Namespace int

const (
	// Unknown is the zero value and never a valid namespace.
	Unknown Namespace = iota
	// Official names are the ones found in the shipped game jars, usually
	// obfuscated.
	Official
	// Intermediary names are generated to stay stable across game versions
	// and are used at production runtime.
	Intermediary
	// Srg names are the production mapping set of the Forge toolchain.
	Srg
	// Mojang names come from the vendor's published deobfuscation maps.
	Mojang
	// Named are the developer friendly names mods are written against.
	Named

	// total is the number of namespaces including Unknown.
	total = int(iota)
)

var names = [total]string{
	Unknown:      "unknown",
	Official:     "official",
	Intermediary: "intermediary",
	Srg:          "srg",
	Mojang:       "mojang",
	Named:        "named",
}

// Lookup resolves a namespace by name. Matching is case-insensitive. The
// second return value is false for unrecognized names; forward compatible
// mapping files are expected to carry namespaces this registry does not
// know.
func Lookup(name string) (Namespace, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for ns := Official; int(ns) < total; ns++ {
		if names[ns] == name {
			return ns, true
		}
	}
	return Unknown, false
}

// All returns every valid namespace in declaration order.
func All() []Namespace {
	all := make([]Namespace, 0, total-1)
	for ns := Official; int(ns) < total; ns++ {
		all = append(all, ns)
	}
	return all
}

// Valid reports whether ns is one of the declared namespaces.
func (ns Namespace) Valid() bool {
	return ns > Unknown && int(ns) < total
}

// String returns the canonical lowercase name.
func (ns Namespace) String() string {
	if ns < Unknown || int(ns) >= total {
		return fmt.Sprintf("Namespace(%d)", int(ns))
	}
	return names[ns]
}

// MarshalText implements encoding.TextMarshaler.
func (ns Namespace) MarshalText() ([]byte, error) {
	if !ns.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid namespace %d", int(ns))
	}
	return []byte(ns.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ns *Namespace) UnmarshalText(text []byte) error {
	found, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("unknown namespace %q", string(text))
	}
	*ns = found
	return nil
}

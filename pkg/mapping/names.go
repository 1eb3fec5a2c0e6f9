package mapping

import (
	"maps"
	"strings"

	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Names maps a namespace to the name of a symbol in that namespace. A
// missing or empty entry means the symbol is not known in that namespace.
type Names map[namespace.Namespace]string

// Get returns the name in ns. The second value is false when the name is
// absent.
func (n Names) Get(ns namespace.Namespace) (string, bool) {
	name, ok := n[ns]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Namespaces returns the set of namespaces with a non-empty name.
func (n Names) Namespaces() namespace.Set {
	var set namespace.Set
	for ns, name := range n {
		if name != "" {
			set = set.Add(ns)
		}
	}
	return set
}

// Clone returns a copy of n without absent entries.
func (n Names) Clone() Names {
	clone := make(Names, len(n))
	for ns, name := range n {
		if name != "" {
			clone[ns] = name
		}
	}
	return clone
}

// Equal reports whether both maps hold the same non-empty names.
func (n Names) Equal(other Names) bool {
	return maps.Equal(n.Clone(), other.Clone())
}

func (n Names) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, ns := range n.Namespaces().Slice() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(ns.String())
		b.WriteByte('=')
		b.WriteString(n[ns])
	}
	b.WriteByte('}')
	return b.String()
}

// NameKey is the scope in which a name must denote a single symbol. Class
// names are global. Method and field names are scoped by their owner and
// descriptor, so overloads and same named members of different classes
// never collide. Parameter names are scoped by their method.
type NameKey struct {
	Kind  Kind
	Owner Identity
	Name  string
	Desc  string
}

// KeyOf returns the scope key of id carrying the given name.
func KeyOf(id Identity, name string) NameKey {
	switch id.Kind {
	case KindMethod, KindField:
		return NameKey{Kind: id.Kind, Owner: id.Owner(), Name: name, Desc: id.Desc}
	case KindParameter:
		return NameKey{Kind: id.Kind, Owner: id.Owner(), Name: name}
	}
	return NameKey{Kind: id.Kind, Name: name}
}

// ClassKey is the scope key of a qualified class name.
func ClassKey(name string) NameKey {
	return NameKey{Kind: KindClass, Name: name}
}

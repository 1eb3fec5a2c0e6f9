package mapping

import (
	"cmp"
	"fmt"

	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Identity is the namespace independent key of a symbol. Two records with
// equal identities denote the same program element, whatever names they
// carry.
//
// Class identities are keyed by the official internal name. Member
// identities add the official member name and the erased descriptor, spelled
// with class identity names. A parameter is keyed by its method's identity
// fields plus the ordinal.
type Identity struct {
	Kind Kind
	// Class is the identity name of the class, or of the owning class for
	// members and parameters.
	Class string
	// Name is the official name of a member, or of the owning method for a
	// parameter.
	Name string
	// Desc is the descriptor of a member or of the owning method for a
	// parameter.
	Desc string
	// Index is the ordinal of a parameter.
	Index int
}

// ClassIdentity returns the identity of the class with the given identity
// name.
func ClassIdentity(class string) Identity {
	return Identity{Kind: KindClass, Class: class}
}

// MethodIdentity returns the identity of a method.
func MethodIdentity(class, name, desc string) Identity {
	return Identity{Kind: KindMethod, Class: class, Name: name, Desc: desc}
}

// FieldIdentity returns the identity of a field. The descriptor may be empty
// for mapping sources that do not record field types.
func FieldIdentity(class, name, desc string) Identity {
	return Identity{Kind: KindField, Class: class, Name: name, Desc: desc}
}

// ParameterIdentity returns the identity of the parameter at index of the
// given method.
func ParameterIdentity(method Identity, index int) Identity {
	return Identity{
		Kind:  KindParameter,
		Class: method.Class,
		Name:  method.Name,
		Desc:  method.Desc,
		Index: index,
	}
}

// IsZero reports whether id is the zero identity.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Owner returns the identity of the enclosing symbol: the class of a member,
// the method of a parameter. Classes have no owner and return the zero
// identity.
func (id Identity) Owner() Identity {
	switch id.Kind {
	case KindMethod, KindField:
		return ClassIdentity(id.Class)
	case KindParameter:
		return MethodIdentity(id.Class, id.Name, id.Desc)
	}
	return Identity{}
}

// ClassOf returns the identity of the class that declares id, or id itself
// for a class.
func (id Identity) ClassOf() Identity {
	if id.Kind == KindUnknown {
		return Identity{}
	}
	return ClassIdentity(id.Class)
}

func (id Identity) String() string {
	switch id.Kind {
	case KindClass:
		return id.Class
	case KindMethod:
		return id.Class + "." + id.Name + id.Desc
	case KindField:
		if id.Desc == "" {
			return id.Class + "." + id.Name
		}
		return id.Class + "." + id.Name + ":" + id.Desc
	case KindParameter:
		return fmt.Sprintf("%s.%s%s#%d", id.Class, id.Name, id.Desc, id.Index)
	}
	return fmt.Sprintf("<%v>", id.Kind)
}

// Compare orders identities by class, kind, name, descriptor and index. It
// returns -1, 0 or +1.
func Compare(a, b Identity) int {
	if c := cmp.Compare(a.Class, b.Class); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Desc, b.Desc); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// stableOrder is the preference order for class identity names when a
// source carries no official name. Obfuscated and generated names come
// first since they change least between releases of a mapping set.
var stableOrder = []namespace.Namespace{
	namespace.Official,
	namespace.Intermediary,
	namespace.Srg,
	namespace.Mojang,
	namespace.Named,
}

// StableClassName picks the class identity name out of names: the official
// name when present, otherwise the most obfuscation stable name available.
func StableClassName(names Names) (string, bool) {
	for _, ns := range stableOrder {
		if name, ok := names.Get(ns); ok {
			return name, true
		}
	}
	return "", false
}

package namespace

import "strings"

// Set is a set of namespaces. The zero value is empty and ready to use.
type Set uint8

// NewSet returns a set holding the given namespaces. Invalid namespaces are
// ignored.
func NewSet(namespaces ...Namespace) Set {
	var s Set
	for _, ns := range namespaces {
		s = s.Add(ns)
	}
	return s
}

// Add returns a copy of s that also holds ns.
func (s Set) Add(ns Namespace) Set {
	if !ns.Valid() {
		return s
	}
	return s | 1<<uint(ns)
}

// Union returns the namespaces held by either set.
func (s Set) Union(other Set) Set {
	return s | other
}

// Has reports whether ns is in the set.
func (s Set) Has(ns Namespace) bool {
	return ns.Valid() && s&(1<<uint(ns)) != 0
}

// Len is the number of namespaces in the set.
func (s Set) Len() int {
	n := 0
	for _, ns := range All() {
		if s.Has(ns) {
			n++
		}
	}
	return n
}

// Slice lists the members of the set in declaration order.
func (s Set) Slice() []Namespace {
	var list []Namespace
	for _, ns := range All() {
		if s.Has(ns) {
			list = append(list, ns)
		}
	}
	return list
}

func (s Set) String() string {
	members := s.Slice()
	parts := make([]string, len(members))
	for i, ns := range members {
		parts[i] = ns.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

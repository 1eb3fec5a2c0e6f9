package remap

import (
	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/mappingtree"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Lookup is the read-only query surface a Remapper needs from a merged
// mapping tree.
type Lookup interface {
	// NameIn returns the name of id in ns.
	NameIn(id mapping.Identity, ns namespace.Namespace) (string, bool)
	// Find resolves a scoped name in ns.
	Find(ns namespace.Namespace, key mapping.NameKey) (mapping.Identity, bool)
	// FindByName resolves a name of the given kind in ns.
	FindByName(ns namespace.Namespace, kind mapping.Kind, name string) (mapping.Identity, bool)
	// FindMembers lists the methods or fields of owner named name in ns.
	FindMembers(ns namespace.Namespace, kind mapping.Kind, owner mapping.Identity, name string) []mapping.Identity
	// EnclosingClass finds the longest known class name in ns that equals or
	// encloses name, and the length of that prefix.
	EnclosingClass(ns namespace.Namespace, name string) (mapping.Identity, int, bool)
}

var _ Lookup = (*mappingtree.Tree)(nil)

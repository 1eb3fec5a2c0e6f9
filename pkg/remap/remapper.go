// Package remap translates class names, member names and descriptors from
// one namespace to another using a merged mapping tree.
//
// Missing mapping data is never an error: a symbol that is unknown, or
// known but unnamed in the target namespace, passes through unchanged.
// Only structurally invalid descriptors fail, with a
// *MalformedDescriptorError.
package remap

import (
	"fmt"
	"strings"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Remapper translates references from one namespace to another. It holds
// no mutable state and is safe for concurrent use.
type Remapper struct {
	lookup   Lookup
	from, to namespace.Namespace
}

// New returns a Remapper from one namespace to another.
func New(lookup Lookup, from, to namespace.Namespace) *Remapper {
	return &Remapper{lookup: lookup, from: from, to: to}
}

// From is the source namespace.
func (r *Remapper) From() namespace.Namespace {
	return r.from
}

// To is the target namespace.
func (r *Remapper) To() namespace.Namespace {
	return r.to
}

// Inverse returns the Remapper for the opposite direction.
func (r *Remapper) Inverse() *Remapper {
	return New(r.lookup, r.to, r.from)
}

// MemberRef is a remapped member reference.
type MemberRef struct {
	Owner string
	Name  string
	Desc  string
}

func (m MemberRef) String() string {
	return m.Owner + "." + m.Name + m.Desc
}

// ClassName remaps an internal class name. Array type names ("[Lfoo;") are
// remapped as descriptors. An inner class that is unknown as a whole keeps
// its inner suffix behind the remapped name of its closest known outer
// class.
func (r *Remapper) ClassName(name string) string {
	if r.from == r.to {
		return name
	}
	if strings.HasPrefix(name, "[") {
		desc, err := r.Descriptor(name)
		if err != nil {
			return name
		}
		return desc
	}
	return r.className(name)
}

func (r *Remapper) className(name string) string {
	id, suffix, ok := r.resolveClass(name)
	if !ok {
		return name
	}
	target, ok := r.lookup.NameIn(id, r.to)
	if !ok {
		return name
	}
	return target + suffix
}

// resolveClass finds the identity of a class named in the source namespace.
// When only an outer class is known, the unmatched inner suffix is returned
// with it.
func (r *Remapper) resolveClass(name string) (mapping.Identity, string, bool) {
	if id, ok := r.lookup.FindByName(r.from, mapping.KindClass, name); ok {
		return id, "", true
	}
	if !strings.Contains(name, "$") {
		return mapping.Identity{}, "", false
	}
	id, n, ok := r.lookup.EnclosingClass(r.from, name)
	if !ok || n >= len(name) || name[n] != '$' {
		return mapping.Identity{}, "", false
	}
	return id, name[n:], true
}

// Descriptor remaps every class referenced by a field or method descriptor.
func (r *Remapper) Descriptor(desc string) (string, error) {
	d, err := ParseDescriptor(desc)
	if err != nil {
		return "", err
	}
	if r.from == r.to {
		return desc, nil
	}
	return d.MapClasses(r.className).String(), nil
}

// identityDescriptor respells a source namespace descriptor with class
// identity names, the form member identities are keyed by.
func (r *Remapper) identityDescriptor(d Descriptor) string {
	return d.MapClasses(func(class string) string {
		id, suffix, ok := r.resolveClass(class)
		if !ok {
			return class
		}
		return id.Class + suffix
	}).String()
}

// MemberName remaps the name of a method or field of owner. The owner and
// descriptor are given in the source namespace; desc may be empty when
// unknown, in which case the name resolves only if it is not overloaded.
func (r *Remapper) MemberName(owner, name, desc string, kind mapping.Kind) (string, error) {
	ref, err := r.Member(owner, name, desc, kind)
	if err != nil {
		return "", err
	}
	return ref.Name, nil
}

// Member remaps a member reference: its owner, name and descriptor.
func (r *Remapper) Member(owner, name, desc string, kind mapping.Kind) (MemberRef, error) {
	if !kind.IsMember() {
		return MemberRef{}, fmt.Errorf("cannot remap %v as a member", kind)
	}
	ref := MemberRef{Owner: owner, Name: name, Desc: desc}

	var d Descriptor
	if desc != "" {
		var err error
		if d, err = ParseDescriptor(desc); err != nil {
			return MemberRef{}, err
		}
		if d.IsMethod() != (kind == mapping.KindMethod) {
			return MemberRef{}, &MalformedDescriptorError{
				Descriptor: desc,
				Reason:     fmt.Sprintf("not a %v descriptor", kind),
			}
		}
	}
	if r.from == r.to {
		return ref, nil
	}

	ref.Owner = r.ClassName(owner)
	if desc != "" {
		ref.Desc = d.MapClasses(r.className).String()
	}

	id, ok := r.resolveMember(owner, name, desc, d, kind)
	if !ok {
		return ref, nil
	}
	if target, ok := r.lookup.NameIn(id, r.to); ok {
		ref.Name = target
	}
	return ref, nil
}

func (r *Remapper) resolveMember(owner, name, desc string, d Descriptor, kind mapping.Kind) (mapping.Identity, bool) {
	ownerID, suffix, ok := r.resolveClass(owner)
	if !ok || suffix != "" {
		return mapping.Identity{}, false
	}
	if desc == "" {
		candidates := r.lookup.FindMembers(r.from, kind, ownerID, name)
		if len(candidates) != 1 {
			return mapping.Identity{}, false
		}
		return candidates[0], true
	}

	key := mapping.NameKey{Kind: kind, Owner: ownerID, Name: name, Desc: r.identityDescriptor(d)}
	if id, ok := r.lookup.Find(r.from, key); ok {
		return id, true
	}
	if kind == mapping.KindField {
		// mapping sources that omit field types key fields without one
		key.Desc = ""
		return r.lookup.Find(r.from, key)
	}
	return mapping.Identity{}, false
}

// ParameterName remaps the name of the parameter at index of a method. The
// given name is returned when the parameter has no name in the target
// namespace.
func (r *Remapper) ParameterName(owner, method, desc string, index int, name string) (string, error) {
	if desc == "" || !IsMethodDescriptor(desc) {
		return "", &MalformedDescriptorError{Descriptor: desc, Reason: "not a method descriptor"}
	}
	d, err := ParseDescriptor(desc)
	if err != nil {
		return "", err
	}
	if r.from == r.to {
		return name, nil
	}
	methodID, ok := r.resolveMember(owner, method, desc, d, mapping.KindMethod)
	if !ok {
		return name, nil
	}
	if target, ok := r.lookup.NameIn(mapping.ParameterIdentity(methodID, index), r.to); ok {
		return target, nil
	}
	return name, nil
}

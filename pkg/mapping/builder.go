package mapping

import (
	"fmt"

	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Builder accumulates the records of a layer. A builder is owned by a
// single goroutine and may be built once.
type Builder struct {
	name     string
	declared namespace.Set
	records  []*Record
	byID     map[Identity]int
	built    bool
}

// NewBuilder returns an empty builder for the named layer.
func NewBuilder(name string) *Builder {
	return &Builder{
		name: name,
		byID: make(map[Identity]int),
	}
}

// Declare records that the layer covers the given namespaces, whether or not
// any record names a symbol in them.
func (b *Builder) Declare(namespaces ...namespace.Namespace) *Builder {
	for _, ns := range namespaces {
		b.declared = b.declared.Add(ns)
	}
	return b
}

// Add validates r and adds a copy of it. A second record for an identity
// already in the builder is folded into the first: its non-empty names
// replace earlier ones.
func (b *Builder) Add(r *Record) error {
	if b.built {
		return fmt.Errorf("layer %q: builder already built", b.name)
	}
	if r == nil {
		return fmt.Errorf("layer %q: nil record", b.name)
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("layer %q: %w", b.name, err)
	}
	if i, ok := b.byID[r.ID]; ok {
		existing := b.records[i]
		for ns, name := range r.Names {
			if name != "" {
				existing.Names[ns] = name
			}
		}
		return nil
	}
	b.byID[r.ID] = len(b.records)
	b.records = append(b.records, r.Clone())
	return nil
}

// AddClass adds a class record keyed by the given identity name.
func (b *Builder) AddClass(class string, names Names) (Identity, error) {
	id := ClassIdentity(class)
	return id, b.Add(NewRecord(id, names))
}

// AddMethod adds a method record. The descriptor is spelled with class
// identity names.
func (b *Builder) AddMethod(class, name, desc string, names Names) (Identity, error) {
	id := MethodIdentity(class, name, desc)
	return id, b.Add(NewRecord(id, names))
}

// AddField adds a field record.
func (b *Builder) AddField(class, name, desc string, names Names) (Identity, error) {
	id := FieldIdentity(class, name, desc)
	return id, b.Add(NewRecord(id, names))
}

// AddParameter adds a record for the parameter at index of method.
func (b *Builder) AddParameter(method Identity, index int, names Names) (Identity, error) {
	if method.Kind != KindMethod {
		return Identity{}, fmt.Errorf("layer %q: parameter owner %v is a %v, not a method", b.name, method, method.Kind)
	}
	id := ParameterIdentity(method, index)
	return id, b.Add(NewRecord(id, names))
}

// Build checks that no namespace assigns one name to two symbols within the
// same scope and returns the finished layer. The builder cannot be used
// afterwards.
func (b *Builder) Build() (*Layer, error) {
	if b.built {
		return nil, fmt.Errorf("layer %q: builder already built", b.name)
	}
	if err := b.checkDuplicates(); err != nil {
		return nil, err
	}
	b.built = true

	covered := b.declared
	for _, r := range b.records {
		covered = covered.Union(r.Names.Namespaces())
	}

	layer := &Layer{
		name:    b.name,
		records: b.records,
		byID:    b.byID,
		covered: covered,
	}
	b.records = nil
	b.byID = nil
	return layer, nil
}

func (b *Builder) checkDuplicates() error {
	for _, ns := range namespace.All() {
		seen := make(map[NameKey]int)
		for i, r := range b.records {
			name, ok := r.Names.Get(ns)
			if !ok {
				continue
			}
			key := KeyOf(r.ID, name)
			first, dup := seen[key]
			if !dup {
				seen[key] = i
				continue
			}
			err := &DuplicateNameError{
				Layer:      b.name,
				Namespace:  ns,
				Kind:       r.ID.Kind,
				Name:       name,
				Identities: []Identity{b.records[first].ID},
			}
			for _, other := range b.records[first+1:] {
				if n, ok := other.Names.Get(ns); ok && KeyOf(other.ID, n) == key {
					err.Identities = append(err.Identities, other.ID)
				}
			}
			return err
		}
	}
	return nil
}

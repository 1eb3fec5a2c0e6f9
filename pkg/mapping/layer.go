package mapping

import (
	"iter"

	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Layer is an immutable set of records contributed by one mapping source.
// Records returned by a layer must not be modified.
type Layer struct {
	name    string
	records []*Record
	byID    map[Identity]int
	covered namespace.Set
}

// NewLayer builds a layer from records in one step.
func NewLayer(name string, records ...*Record) (*Layer, error) {
	b := NewBuilder(name)
	for _, r := range records {
		if err := b.Add(r); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Name returns the name the layer was built with.
func (l *Layer) Name() string {
	return l.name
}

// Len returns the number of distinct symbols in the layer.
func (l *Layer) Len() int {
	return len(l.records)
}

// CoveredNamespaces returns the declared namespaces together with every
// namespace any record carries a name in.
func (l *Layer) CoveredNamespaces() namespace.Set {
	return l.covered
}

// Get returns the record for id.
func (l *Layer) Get(id Identity) (*Record, bool) {
	i, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	return l.records[i], true
}

// Records yields the records in the order they were first added.
func (l *Layer) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range l.records {
			if !yield(r) {
				return
			}
		}
	}
}

// RecordsByIdentity yields each record keyed by its identity, in the order
// the identities were first added.
func (l *Layer) RecordsByIdentity() iter.Seq2[Identity, *Record] {
	return func(yield func(Identity, *Record) bool) {
		for _, r := range l.records {
			if !yield(r.ID, r) {
				return
			}
		}
	}
}

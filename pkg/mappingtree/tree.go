// Package mappingtree holds the merged, queryable result of folding mapping
// layers.
package mappingtree

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/dghubble/trie"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Tree is an immutable set of merged records indexed by identity and, per
// namespace, by name. All methods are safe for concurrent use.
type Tree struct {
	records map[mapping.Identity]*mapping.Record
	// order is the sorted list of identities.
	order      []mapping.Identity
	namespaces namespace.Set
	// children maps a class to its members and a method to its parameters.
	children map[mapping.Identity][]mapping.Identity
	index    map[namespace.Namespace]*nameIndex
}

// nameIndex is the reverse index of one namespace.
type nameIndex struct {
	// byKey resolves a scoped name exactly.
	byKey map[mapping.NameKey]mapping.Identity
	// byName lists every symbol of a kind carrying a name, whatever its
	// scope.
	byName map[kindName][]mapping.Identity
	// byMember lists the overloads of a member name within an owner.
	byMember map[memberName][]mapping.Identity
	// classes holds class names segmented at inner class boundaries.
	classes *trie.PathTrie
}

type kindName struct {
	kind mapping.Kind
	name string
}

type memberName struct {
	kind  mapping.Kind
	owner mapping.Identity
	name  string
}

// Build indexes the given records into a tree. The tree takes ownership of
// the records. It is an error for two records to share an identity, or for
// two identities to share a name within a namespace and scope.
func Build(records []*mapping.Record) (*Tree, error) {
	t := &Tree{
		records:  make(map[mapping.Identity]*mapping.Record, len(records)),
		order:    make([]mapping.Identity, 0, len(records)),
		children: make(map[mapping.Identity][]mapping.Identity),
		index:    make(map[namespace.Namespace]*nameIndex),
	}
	for _, r := range records {
		if _, dup := t.records[r.ID]; dup {
			return nil, fmt.Errorf("duplicate record for %v %v", r.ID.Kind, r.ID)
		}
		t.records[r.ID] = r
		t.order = append(t.order, r.ID)
		t.namespaces = t.namespaces.Union(r.Names.Namespaces())
	}
	slices.SortFunc(t.order, mapping.Compare)

	for _, id := range t.order {
		if owner := id.Owner(); !owner.IsZero() {
			t.children[owner] = append(t.children[owner], id)
		}
	}

	for _, ns := range t.namespaces.Slice() {
		idx, err := t.buildIndex(ns)
		if err != nil {
			return nil, err
		}
		t.index[ns] = idx
	}
	return t, nil
}

func (t *Tree) buildIndex(ns namespace.Namespace) (*nameIndex, error) {
	idx := &nameIndex{
		byKey:    make(map[mapping.NameKey]mapping.Identity),
		byName:   make(map[kindName][]mapping.Identity),
		byMember: make(map[memberName][]mapping.Identity),
		classes: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: innerClassSegmenter,
		}),
	}
	for _, id := range t.order {
		name, ok := t.records[id].Names.Get(ns)
		if !ok {
			continue
		}
		key := mapping.KeyOf(id, name)
		if _, dup := idx.byKey[key]; dup {
			return nil, t.ambiguous(ns, key)
		}
		idx.byKey[key] = id

		kn := kindName{kind: id.Kind, name: name}
		idx.byName[kn] = append(idx.byName[kn], id)

		switch id.Kind {
		case mapping.KindClass:
			idx.classes.Put(name, id)
		case mapping.KindMethod, mapping.KindField:
			mn := memberName{kind: id.Kind, owner: id.Owner(), name: name}
			idx.byMember[mn] = append(idx.byMember[mn], id)
		}
	}
	return idx, nil
}

// ambiguous collects every identity holding key in ns.
func (t *Tree) ambiguous(ns namespace.Namespace, key mapping.NameKey) error {
	err := &AmbiguousNameError{
		Namespace: ns,
		Kind:      key.Kind,
		Name:      key.Name,
	}
	for _, id := range t.order {
		if name, ok := t.records[id].Names.Get(ns); ok && mapping.KeyOf(id, name) == key {
			err.Identities = append(err.Identities, id)
		}
	}
	return err
}

// innerClassSegmenter segments class names at inner class separators. For
// example, "a/B$C$D" -> ("a/B", 3), ("$C", 5), ("$D", -1) in successive
// calls.
func innerClassSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexByte(path[start+1:], '$')
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}

// Len returns the number of symbols in the tree.
func (t *Tree) Len() int {
	return len(t.order)
}

// Namespaces returns every namespace at least one symbol is named in.
func (t *Tree) Namespaces() namespace.Set {
	return t.namespaces
}

// Get returns the merged record of id. The record must not be modified.
func (t *Tree) Get(id mapping.Identity) (*mapping.Record, bool) {
	r, ok := t.records[id]
	return r, ok
}

// NameIn returns the name of id in ns. The second value is false both when
// the symbol is unknown and when it has no name in ns; use Get to tell the
// two apart.
func (t *Tree) NameIn(id mapping.Identity, ns namespace.Namespace) (string, bool) {
	r, ok := t.records[id]
	if !ok {
		return "", false
	}
	return r.Names.Get(ns)
}

// Find resolves a scoped name in ns.
func (t *Tree) Find(ns namespace.Namespace, key mapping.NameKey) (mapping.Identity, bool) {
	idx, ok := t.index[ns]
	if !ok {
		return mapping.Identity{}, false
	}
	id, ok := idx.byKey[key]
	return id, ok
}

// FindByName resolves a name of the given kind in ns. Class names are
// qualified and always unique. Member and parameter names resolve only when
// a single symbol of the kind carries the name anywhere in the tree: a name
// shared by two fields of different classes, or by two overloads, reports
// not found. Use Find or FindMembers for scoped lookups.
func (t *Tree) FindByName(ns namespace.Namespace, kind mapping.Kind, name string) (mapping.Identity, bool) {
	if kind == mapping.KindClass {
		return t.Find(ns, mapping.ClassKey(name))
	}
	idx, ok := t.index[ns]
	if !ok {
		return mapping.Identity{}, false
	}
	ids := idx.byName[kindName{kind: kind, name: name}]
	if len(ids) != 1 {
		return mapping.Identity{}, false
	}
	return ids[0], true
}

// FindMembers lists the methods or fields of owner named name in ns, in
// identity order. Overloads yield more than one result.
func (t *Tree) FindMembers(ns namespace.Namespace, kind mapping.Kind, owner mapping.Identity, name string) []mapping.Identity {
	idx, ok := t.index[ns]
	if !ok {
		return nil
	}
	return slices.Clone(idx.byMember[memberName{kind: kind, owner: owner, name: name}])
}

// EnclosingClass finds the longest class name in ns that equals name or
// encloses it as an outer class ("a$b" encloses "a$b$c"). It returns the
// class identity and the length of the matched prefix.
func (t *Tree) EnclosingClass(ns namespace.Namespace, name string) (mapping.Identity, int, bool) {
	idx, ok := t.index[ns]
	if !ok {
		return mapping.Identity{}, 0, false
	}
	var (
		found  mapping.Identity
		length int
	)
	idx.classes.WalkPath(name, func(key string, value interface{}) error {
		if key == "" {
			return nil
		}
		found = value.(mapping.Identity)
		length = len(key)
		return nil
	})
	return found, length, length > 0
}

// Members returns the methods and fields of a class, or the parameters of a
// method, in identity order.
func (t *Tree) Members(owner mapping.Identity) []mapping.Identity {
	return slices.Clone(t.children[owner])
}

// Records yields every record in identity order.
func (t *Tree) Records() iter.Seq[*mapping.Record] {
	return func(yield func(*mapping.Record) bool) {
		for _, id := range t.order {
			if !yield(t.records[id]) {
				return
			}
		}
	}
}

// Package layerio reads and writes mapping layers as YAML or JSON
// documents.
package layerio

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// File is the document form of a layer.
type File struct {
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Namespaces []string `yaml:"namespaces,omitempty" json:"namespaces,omitempty"`
	Records    []Record `yaml:"records" json:"records"`
}

// Record is the document form of a mapping.Record. A parameter record
// names its method in Class, Member and Desc.
type Record struct {
	Kind   string            `yaml:"kind" json:"kind"`
	Class  string            `yaml:"class" json:"class"`
	Member string            `yaml:"member,omitempty" json:"member,omitempty"`
	Desc   string            `yaml:"desc,omitempty" json:"desc,omitempty"`
	Index  int               `yaml:"index,omitempty" json:"index,omitempty"`
	Names  map[string]string `yaml:"names,omitempty" json:"names,omitempty"`
}

type warnFunc func(format string, args ...any)

// Option configures decoding.
type Option func(*decoder) *decoder

// WithWarn sets the function that receives decode warnings, such as a
// namespace this version does not know.
func WithWarn(warn func(format string, args ...any)) Option {
	return func(d *decoder) *decoder {
		d.warn = warn
		return d
	}
}

var defaultOptions = []Option{
	WithWarn(func(format string, args ...any) {}),
}

type decoder struct {
	warn warnFunc
}

func newDecoder(options ...Option) *decoder {
	d := &decoder{}
	for _, opt := range append(defaultOptions, options...) {
		d = opt(d)
	}
	return d
}

// Layer builds the layer the document describes. defaultName is used when
// the document has no name.
func (f *File) Layer(defaultName string, options ...Option) (*mapping.Layer, error) {
	return newDecoder(options...).layer(f, defaultName)
}

func (d *decoder) layer(f *File, defaultName string) (*mapping.Layer, error) {
	name := f.Name
	if name == "" {
		name = defaultName
	}

	b := mapping.NewBuilder(name)
	for _, s := range f.Namespaces {
		if ns, ok := d.namespace(name, s); ok {
			b.Declare(ns)
		}
	}

	for i, fr := range f.Records {
		kind, ok := mapping.ParseKind(fr.Kind)
		if !ok {
			return nil, fmt.Errorf("layer %q: record %d: unknown kind %q", name, i, fr.Kind)
		}
		names, err := d.names(name, fr.Names)
		if err != nil {
			return nil, fmt.Errorf("layer %q: record %d: %w", name, i, err)
		}
		id := mapping.Identity{
			Kind:  kind,
			Class: fr.Class,
			Name:  fr.Member,
			Desc:  fr.Desc,
			Index: fr.Index,
		}
		if id.Class == "" && kind == mapping.KindClass {
			id.Class, _ = mapping.StableClassName(names)
		}
		if err := b.Add(mapping.NewRecord(id, names)); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return b.Build()
}

// names resolves the namespace keys of a document record. Keys are visited
// in sorted order; two keys naming the same namespace are an error.
func (d *decoder) names(layer string, in map[string]string) (mapping.Names, error) {
	names := make(mapping.Names, len(in))
	seen := make(map[namespace.Namespace]string, len(in))
	for _, s := range slices.Sorted(maps.Keys(in)) {
		ns, ok := d.namespace(layer, s)
		if !ok {
			continue
		}
		if prev, dup := seen[ns]; dup {
			return nil, fmt.Errorf("keys %q and %q both name namespace %v", prev, s, ns)
		}
		seen[ns] = s
		names[ns] = in[s]
	}
	return names, nil
}

func (d *decoder) namespace(layer, s string) (namespace.Namespace, bool) {
	ns, ok := namespace.Lookup(s)
	if !ok {
		d.warn("layer %q: skipping unknown namespace %q", layer, s)
	}
	return ns, ok
}

// NewFile returns the document form of records.
func NewFile(name string, covered namespace.Set, records iter.Seq[*mapping.Record]) *File {
	f := &File{Name: name, Records: []Record{}}
	for _, ns := range covered.Slice() {
		f.Namespaces = append(f.Namespaces, ns.String())
	}
	for r := range records {
		fr := Record{
			Kind:   r.ID.Kind.String(),
			Class:  r.ID.Class,
			Member: r.ID.Name,
			Desc:   r.ID.Desc,
			Index:  r.ID.Index,
		}
		for _, ns := range r.Names.Namespaces().Slice() {
			if fr.Names == nil {
				fr.Names = make(map[string]string)
			}
			fr.Names[ns.String()] = r.Names[ns]
		}
		f.Records = append(f.Records, fr)
	}
	return f
}

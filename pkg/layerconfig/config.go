// Package layerconfig loads the ordered list of mapping layers from a
// starlark configuration file:
//
//	layer(
//	    name = "intermediary",
//	    srcs = ["mappings/intermediary.yaml"],
//	)
//	layer(
//	    name = "yarn",
//	    srcs = ["mappings/yarn/**/*.yaml"],
//	    namespaces = ["intermediary", "named"],
//	)
//
// Layers are listed lowest priority first. Source patterns are doublestar
// globs relative to the directory of the configuration file.
package layerconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.starlark.net/starlark"

	"github.com/stackb/layered-mappings/pkg/namespace"
	"github.com/stackb/layered-mappings/pkg/starlarkeval"
)

// LayerSpec is one configured layer.
type LayerSpec struct {
	// Name of the layer.
	Name string
	// Srcs are the layer files, in the order they are read.
	Srcs []string
	// Namespaces, when not empty, restricts the layer to the given
	// namespaces. Names in other namespaces are dropped.
	Namespaces namespace.Set
}

type warnFunc func(format string, args ...any)

// Option configures loading.
type Option func(*loader) *loader

// WithWarn sets the function that receives print() output and load
// warnings.
func WithWarn(warn func(format string, args ...any)) Option {
	return func(l *loader) *loader {
		l.warn = warn
		return l
	}
}

var defaultOptions = []Option{
	WithWarn(func(format string, args ...any) {}),
}

type loader struct {
	warn  warnFunc
	dir   string
	specs []LayerSpec
	names map[string]bool
}

// Load evaluates the configuration file and returns its layers in priority
// order.
func Load(filename string, options ...Option) ([]LayerSpec, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", filename, err)
	}
	defer f.Close()
	return LoadFrom(filename, filepath.Dir(filename), f, options...)
}

// LoadFrom evaluates configuration read from src. Source patterns are
// resolved against dir.
func LoadFrom(filename, dir string, src io.Reader, options ...Option) ([]LayerSpec, error) {
	l := &loader{dir: dir, names: make(map[string]bool)}
	for _, opt := range append(defaultOptions, options...) {
		l = opt(l)
	}

	interpreter := starlarkeval.NewInterpreter(starlarkeval.Reporter(l.warn), starlark.StringDict{
		"layer": starlark.NewBuiltin("layer", l.layer),
	})
	if err := interpreter.Exec(filename, src); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(l.specs) == 0 {
		return nil, fmt.Errorf("%s: no layers configured", filename)
	}
	return l.specs, nil
}

func (l *loader) layer(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var srcs *starlark.List
	namespaces := &starlark.List{}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"srcs", &srcs,
		"namespaces?", &namespaces,
	); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%s: name must not be empty", b.Name())
	}
	if l.names[name] {
		return nil, fmt.Errorf("%s: duplicate layer %q", b.Name(), name)
	}

	spec := LayerSpec{Name: name}

	patterns, err := stringList(srcs)
	if err != nil {
		return nil, fmt.Errorf("%s %q: srcs: %w", b.Name(), name, err)
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%s %q: srcs must not be empty", b.Name(), name)
	}
	for _, pattern := range patterns {
		matches, err := l.glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", b.Name(), name, err)
		}
		for _, match := range matches {
			if !slices.Contains(spec.Srcs, match) {
				spec.Srcs = append(spec.Srcs, match)
			}
		}
	}

	values, err := stringList(namespaces)
	if err != nil {
		return nil, fmt.Errorf("%s %q: namespaces: %w", b.Name(), name, err)
	}
	for _, v := range values {
		ns, ok := namespace.Lookup(v)
		if !ok {
			return nil, fmt.Errorf("%s %q: unknown namespace %q", b.Name(), name, v)
		}
		spec.Namespaces = spec.Namespaces.Add(ns)
	}

	l.names[name] = true
	l.specs = append(l.specs, spec)
	return starlark.None, nil
}

// glob expands a source pattern to the sorted list of matching files. A
// pattern that matches nothing is an error.
func (l *loader) glob(pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		return nil, fmt.Errorf("src %q must be relative to the configuration file", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("src %q is not a valid pattern", pattern)
	}
	names, err := doublestar.Glob(os.DirFS(l.dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("src %q: %w", pattern, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("src %q matched no files", pattern)
	}
	slices.Sort(names)
	for i, name := range names {
		names[i] = filepath.Join(l.dir, filepath.FromSlash(name))
	}
	return names, nil
}

func stringList(list *starlark.List) ([]string, error) {
	values := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, fmt.Errorf("element %d: want string, got %s", i, list.Index(i).Type())
		}
		values = append(values, s)
	}
	return values, nil
}

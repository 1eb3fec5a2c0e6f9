// Package merge folds an ordered sequence of mapping layers into a single
// mappingtree.Tree.
//
// Layers are applied in the order given. When two layers name the same
// symbol differently in one namespace, the later layer wins; the merge only
// counts such overrides. Once every layer is folded the tree's reverse index
// is built, and any name still shared by two symbols within a namespace and
// scope fails the merge with a *mappingtree.AmbiguousNameError.
package merge

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/mappingtree"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

type warnFunc func(format string, args ...any)

// Option configures a Merger.
type Option func(*Merger) *Merger

// WithLogger sets the logger that receives per-override debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Merger) *Merger {
		m.logger = logger
		return m
	}
}

// WithWarn sets the function that receives merge warnings, such as a layer
// merged twice or a layer without records.
func WithWarn(warn func(format string, args ...any)) Option {
	return func(m *Merger) *Merger {
		m.warn = warn
		return m
	}
}

// WithOverrideDetail makes the merge record every override in
// Diagnostics.Details rather than only counting them.
func WithOverrideDetail(detail bool) Option {
	return func(m *Merger) *Merger {
		m.detail = detail
		return m
	}
}

var defaultOptions = []Option{
	WithLogger(zerolog.Nop()),
	WithWarn(func(format string, args ...any) {}),
}

// Merger folds layers into trees. A Merger holds only configuration and may
// be reused, but a single Merge call is not safe to share across
// goroutines.
type Merger struct {
	logger zerolog.Logger
	warn   warnFunc
	detail bool
}

// New returns a Merger configured with the given options.
func New(options ...Option) *Merger {
	m := &Merger{}
	for _, opt := range append(defaultOptions, options...) {
		m = opt(m)
	}
	return m
}

// Merge folds layers in order, highest priority last. The diagnostics are
// returned even when the merge fails.
func (m *Merger) Merge(layers ...*mapping.Layer) (*mappingtree.Tree, *Diagnostics, error) {
	diag := newDiagnostics()

	entries := make(map[mapping.Identity]*mapping.Record)
	var order []*mapping.Record

	seen := make(map[string]bool)
	for i, layer := range layers {
		if layer == nil {
			return nil, diag, fmt.Errorf("layer %d is nil", i)
		}
		if seen[layer.Name()] {
			m.warn("layer merged more than once: %s", layer.Name())
		}
		seen[layer.Name()] = true
		if layer.Len() == 0 {
			m.warn("layer has no records: %s", layer.Name())
		}

		stats := LayerStats{Name: layer.Name(), Records: layer.Len()}
		for r := range layer.Records() {
			entry, found := entries[r.ID]
			if !found {
				entry = mapping.NewRecord(r.ID, nil)
				entries[r.ID] = entry
				order = append(order, entry)
				stats.Created++
			}
			m.fold(diag, &stats, entry, r)
		}
		diag.Layers = append(diag.Layers, stats)

		m.logger.Debug().
			Str("layer", stats.Name).
			Int("records", stats.Records).
			Int("created", stats.Created).
			Int("overrides", stats.Overrides).
			Msg("folded layer")
	}

	tree, err := mappingtree.Build(order)
	if err != nil {
		return nil, diag, err
	}
	return tree, diag, nil
}

// fold applies the names of r onto entry, the later value winning.
func (m *Merger) fold(diag *Diagnostics, stats *LayerStats, entry, r *mapping.Record) {
	for _, ns := range namespace.All() {
		name, ok := r.Names.Get(ns)
		if !ok {
			continue
		}
		old, had := entry.Names.Get(ns)
		entry.Names[ns] = name
		if !had || old == name {
			continue
		}

		stats.Overrides++
		diag.Overrides++
		diag.OverridesByNamespace[ns]++
		if m.detail {
			diag.Details = append(diag.Details, Override{
				ID:        r.ID,
				Namespace: ns,
				Old:       old,
				New:       name,
				Layer:     stats.Name,
			})
		}
		m.logger.Debug().
			Str("layer", stats.Name).
			Stringer("symbol", r.ID).
			Stringer("namespace", ns).
			Str("old", old).
			Str("new", name).
			Msg("override")
	}
}

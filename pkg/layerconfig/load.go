package layerconfig

import (
	"fmt"

	"github.com/stackb/layered-mappings/pkg/layerio"
	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Load reads every source file of the layer and combines them into one
// layer under the configured name. Later files fill in and override names
// from earlier ones.
func (s LayerSpec) Load(options ...layerio.Option) (*mapping.Layer, error) {
	b := mapping.NewBuilder(s.Name)
	for _, src := range s.Srcs {
		layer, err := layerio.ReadLayerFile(src, options...)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", s.Name, err)
		}
		for _, ns := range layer.CoveredNamespaces().Slice() {
			if s.keeps(ns) {
				b.Declare(ns)
			}
		}
		for r := range layer.Records() {
			r = r.Clone()
			for ns := range r.Names {
				if !s.keeps(ns) {
					delete(r.Names, ns)
				}
			}
			if err := b.Add(r); err != nil {
				return nil, fmt.Errorf("%s: %w", src, err)
			}
		}
	}
	return b.Build()
}

func (s LayerSpec) keeps(ns namespace.Namespace) bool {
	return s.Namespaces.Len() == 0 || s.Namespaces.Has(ns)
}

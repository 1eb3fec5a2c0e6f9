package merge

import (
	"fmt"
	"strings"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Diagnostics are the non-fatal observations of a merge.
type Diagnostics struct {
	// Layers holds per-layer statistics in merge order.
	Layers []LayerStats
	// Overrides counts names replaced by a later layer with a different
	// value.
	Overrides            int
	OverridesByNamespace map[namespace.Namespace]int
	// Details lists each override when WithOverrideDetail is set.
	Details []Override
}

// LayerStats describes what one layer contributed.
type LayerStats struct {
	Name    string
	Records int
	// Created counts symbols first introduced by this layer.
	Created   int
	Overrides int
}

// Override is a name replaced during the merge.
type Override struct {
	ID        mapping.Identity
	Namespace namespace.Namespace
	Old, New  string
	// Layer is the name of the layer whose value won.
	Layer string
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{
		OverridesByNamespace: make(map[namespace.Namespace]int),
	}
}

func (d *Diagnostics) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d layers, %d overrides", len(d.Layers), d.Overrides)
	for _, ns := range namespace.All() {
		if n := d.OverridesByNamespace[ns]; n > 0 {
			fmt.Fprintf(&b, ", %v=%d", ns, n)
		}
	}
	return b.String()
}

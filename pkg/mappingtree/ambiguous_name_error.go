package mappingtree

import (
	"fmt"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// AmbiguousNameError is returned when, after merging, more than one symbol
// carries the same name in a namespace and scope. Unlike overrides between
// layers, this indicates an inconsistent mapping set and is never resolved
// silently.
type AmbiguousNameError struct {
	Namespace namespace.Namespace
	Kind      mapping.Kind
	Name      string
	// Identities lists the conflicting symbols in identity order.
	Identities []mapping.Identity
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous %v name %q in namespace %v: %v", e.Kind, e.Name, e.Namespace, e.Identities)
}

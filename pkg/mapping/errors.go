package mapping

import (
	"fmt"

	"github.com/stackb/layered-mappings/pkg/namespace"
)

// DuplicateNameError is returned when a single layer assigns the same name
// to more than one symbol of a kind within a namespace.
type DuplicateNameError struct {
	// Layer is the name of the offending layer.
	Layer     string
	Namespace namespace.Namespace
	Kind      Kind
	Name      string
	// Identities lists every symbol carrying the name, in insertion order.
	Identities []Identity
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("layer %q: duplicate %v name %q in namespace %v: %v",
		e.Layer, e.Kind, e.Name, e.Namespace, e.Identities)
}

// InvalidRecordError is returned for a structurally unsound record.
type InvalidRecordError struct {
	ID     Identity
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid %v record %v: %s", e.ID.Kind, e.ID, e.Reason)
}

// ClassNameError describes a malformed internal class name.
type ClassNameError struct {
	Name string
	// Offset is the byte offset in Name where the problem was found.
	Offset int
	Reason string
}

func (e *ClassNameError) Error() string {
	return e.Reason
}

package mapping

import (
	"fmt"
	"strings"

	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Record holds what one mapping source knows about one symbol.
type Record struct {
	// ID is the namespace independent key of the symbol.
	ID Identity
	// Names holds the symbol's name per namespace.
	Names Names
}

// NewRecord constructs a record. The names map is copied.
func NewRecord(id Identity, names Names) *Record {
	return &Record{ID: id, Names: names.Clone()}
}

// Kind returns the kind of the symbol.
func (r *Record) Kind() Kind {
	return r.ID.Kind
}

// Owner returns the lookup key of the enclosing symbol (see
// Identity.Owner).
func (r *Record) Owner() Identity {
	return r.ID.Owner()
}

// Descriptor returns the member descriptor, spelled with class identity
// names. Classes return the empty string; parameters return the descriptor
// of their method.
func (r *Record) Descriptor() string {
	return r.ID.Desc
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	return &Record{ID: r.ID, Names: r.Names.Clone()}
}

func (r *Record) String() string {
	return fmt.Sprintf("%v %v %v", r.ID.Kind, r.ID, r.Names)
}

// Validate checks the record is structurally sound: the identity is
// complete for its kind and every name is well-formed for the kind. A class
// or member that carries an official name must be keyed by it.
func (r *Record) Validate() error {
	id := r.ID
	switch id.Kind {
	case KindClass:
		if err := CheckClassName(id.Class); err != nil {
			return &InvalidRecordError{ID: id, Reason: "identity: " + err.Error()}
		}
		if id.Name != "" || id.Desc != "" || id.Index != 0 {
			return &InvalidRecordError{ID: id, Reason: "class identity carries member fields"}
		}
	case KindMethod, KindField:
		if err := CheckClassName(id.Class); err != nil {
			return &InvalidRecordError{ID: id, Reason: "owner: " + err.Error()}
		}
		if err := checkMemberName(id.Kind, id.Name); err != nil {
			return &InvalidRecordError{ID: id, Reason: "identity: " + err.Error()}
		}
		if id.Kind == KindMethod && id.Desc == "" {
			return &InvalidRecordError{ID: id, Reason: "method identity has no descriptor"}
		}
		if id.Index != 0 {
			return &InvalidRecordError{ID: id, Reason: "member identity carries a parameter index"}
		}
	case KindParameter:
		if err := CheckClassName(id.Class); err != nil {
			return &InvalidRecordError{ID: id, Reason: "owner: " + err.Error()}
		}
		if err := checkMemberName(KindMethod, id.Name); err != nil || id.Desc == "" {
			return &InvalidRecordError{ID: id, Reason: "parameter is not owned by a method"}
		}
		if id.Index < 0 {
			return &InvalidRecordError{ID: id, Reason: "negative parameter index"}
		}
	default:
		return &InvalidRecordError{ID: id, Reason: "unknown kind"}
	}

	if official, ok := r.Names.Get(namespace.Official); ok {
		switch id.Kind {
		case KindClass:
			if official != id.Class {
				return &InvalidRecordError{ID: id, Reason: fmt.Sprintf("identity is not the official name %q", official)}
			}
		case KindMethod, KindField:
			if official != id.Name {
				return &InvalidRecordError{ID: id, Reason: fmt.Sprintf("identity is not the official name %q", official)}
			}
		}
	}

	for ns, name := range r.Names {
		if !ns.Valid() {
			return &InvalidRecordError{ID: id, Reason: fmt.Sprintf("invalid namespace %v", ns)}
		}
		if name == "" {
			continue
		}
		var err error
		if id.Kind == KindClass {
			err = CheckClassName(name)
		} else {
			err = checkMemberName(id.Kind, name)
		}
		if err != nil {
			return &InvalidRecordError{ID: id, Reason: fmt.Sprintf("%v name: %v", ns, err)}
		}
	}
	return nil
}

// CheckClassName returns a *ClassNameError unless name is a well-formed
// internal class name, such as "java/lang/Object" or "a$b".
func CheckClassName(name string) error {
	switch {
	case name == "":
		return &ClassNameError{Name: name, Reason: "empty class name"}
	case strings.ContainsAny(name, ".;[()<> \t\r\n"):
		return &ClassNameError{
			Name:   name,
			Offset: strings.IndexAny(name, ".;[()<> \t\r\n"),
			Reason: fmt.Sprintf("illegal character in class name %q", name),
		}
	case strings.HasPrefix(name, "/"):
		return &ClassNameError{Name: name, Reason: fmt.Sprintf("empty package segment in class name %q", name)}
	case strings.Contains(name, "//"):
		return &ClassNameError{
			Name:   name,
			Offset: strings.Index(name, "//") + 1,
			Reason: fmt.Sprintf("empty package segment in class name %q", name),
		}
	case strings.HasSuffix(name, "/"):
		return &ClassNameError{
			Name:   name,
			Offset: len(name) - 1,
			Reason: fmt.Sprintf("empty package segment in class name %q", name),
		}
	}
	return nil
}

func checkMemberName(kind Kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty %v name", kind)
	case strings.ContainsAny(name, ".;[/() \t\r\n"):
		return fmt.Errorf("illegal character in %v name %q", kind, name)
	case strings.ContainsAny(name, "<>"):
		if kind == KindMethod && (name == "<init>" || name == "<clinit>") {
			return nil
		}
		return fmt.Errorf("illegal character in %v name %q", kind, name)
	}
	return nil
}

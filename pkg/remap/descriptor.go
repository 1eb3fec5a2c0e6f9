package remap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stackb/layered-mappings/pkg/mapping"
)

// maxArrayDimensions is the JVM limit on array nesting.
const maxArrayDimensions = 255

// MalformedDescriptorError is returned for structurally invalid descriptor
// input. It indicates a caller bug rather than missing mapping data.
type MalformedDescriptorError struct {
	Descriptor string
	// Offset is the byte position where parsing failed.
	Offset int
	Reason string
}

func (e *MalformedDescriptorError) Error() string {
	return fmt.Sprintf("malformed descriptor %q at offset %d: %s", e.Descriptor, e.Offset, e.Reason)
}

// Type is one field type within a descriptor.
type Type struct {
	// Dims is the number of array dimensions.
	Dims int
	// Base is the primitive marker, 'V' for void, or 'L' for a class.
	Base byte
	// Class is the internal name of a class type.
	Class string
}

func (t Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Type) write(b *strings.Builder) {
	for i := 0; i < t.Dims; i++ {
		b.WriteByte('[')
	}
	b.WriteByte(t.Base)
	if t.Base == 'L' {
		b.WriteString(t.Class)
		b.WriteByte(';')
	}
}

// Descriptor is a parsed field or method descriptor.
type Descriptor struct {
	// Params are the parameter types of a method descriptor.
	Params []Type
	// Type is the field type or the method return type.
	Type   Type
	method bool
}

// IsMethod reports whether the descriptor describes a method.
func (d Descriptor) IsMethod() bool {
	return d.method
}

// Classes lists the class names referenced by the descriptor in order of
// appearance.
func (d Descriptor) Classes() []string {
	var classes []string
	for _, p := range d.Params {
		if p.Base == 'L' {
			classes = append(classes, p.Class)
		}
	}
	if d.Type.Base == 'L' {
		classes = append(classes, d.Type.Class)
	}
	return classes
}

// MapClasses returns a copy of d with every class name replaced by fn.
// Array nesting and primitives are untouched.
func (d Descriptor) MapClasses(fn func(class string) string) Descriptor {
	mapped := Descriptor{method: d.method, Type: mapType(d.Type, fn)}
	if d.Params != nil {
		mapped.Params = make([]Type, len(d.Params))
		for i, p := range d.Params {
			mapped.Params[i] = mapType(p, fn)
		}
	}
	return mapped
}

func mapType(t Type, fn func(string) string) Type {
	if t.Base == 'L' {
		t.Class = fn(t.Class)
	}
	return t
}

func (d Descriptor) String() string {
	var b strings.Builder
	if d.method {
		b.WriteByte('(')
		for _, p := range d.Params {
			p.write(&b)
		}
		b.WriteByte(')')
	}
	d.Type.write(&b)
	return b.String()
}

// ParseDescriptor parses a field descriptor ("I", "[Lfoo/Bar;") or a method
// descriptor ("(ILfoo/Bar;)V").
func ParseDescriptor(desc string) (Descriptor, error) {
	p := &descriptorParser{desc: desc}
	if desc == "" {
		return Descriptor{}, p.fail(0, "empty descriptor")
	}
	if desc[0] != '(' {
		t, err := p.parseType(false)
		if err != nil {
			return Descriptor{}, err
		}
		if p.pos != len(desc) {
			return Descriptor{}, p.fail(p.pos, "trailing characters after field type")
		}
		return Descriptor{Type: t}, nil
	}

	d := Descriptor{method: true, Params: []Type{}}
	p.pos++
	for {
		if p.pos >= len(desc) {
			return Descriptor{}, p.fail(p.pos, "unterminated parameter list")
		}
		if desc[p.pos] == ')' {
			p.pos++
			break
		}
		t, err := p.parseType(false)
		if err != nil {
			return Descriptor{}, err
		}
		d.Params = append(d.Params, t)
	}
	t, err := p.parseType(true)
	if err != nil {
		return Descriptor{}, err
	}
	if p.pos != len(desc) {
		return Descriptor{}, p.fail(p.pos, "trailing characters after return type")
	}
	d.Type = t
	return d, nil
}

// IsMethodDescriptor reports whether desc looks like a method descriptor. It
// does not validate it.
func IsMethodDescriptor(desc string) bool {
	return strings.HasPrefix(desc, "(")
}

type descriptorParser struct {
	desc string
	pos  int
}

func (p *descriptorParser) fail(offset int, format string, args ...any) error {
	return &MalformedDescriptorError{
		Descriptor: p.desc,
		Offset:     offset,
		Reason:     fmt.Sprintf(format, args...),
	}
}

func (p *descriptorParser) parseType(allowVoid bool) (Type, error) {
	var t Type
	start := p.pos
	for p.pos < len(p.desc) && p.desc[p.pos] == '[' {
		t.Dims++
		p.pos++
	}
	if t.Dims > maxArrayDimensions {
		return Type{}, p.fail(start, "more than %d array dimensions", maxArrayDimensions)
	}
	if p.pos >= len(p.desc) {
		return Type{}, p.fail(p.pos, "unexpected end of descriptor")
	}

	c := p.desc[p.pos]
	switch c {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		t.Base = c
		p.pos++
	case 'V':
		if !allowVoid || t.Dims > 0 {
			return Type{}, p.fail(p.pos, "void is only valid as a return type")
		}
		t.Base = c
		p.pos++
	case 'L':
		end := strings.IndexByte(p.desc[p.pos+1:], ';')
		if end < 0 {
			return Type{}, p.fail(p.pos, "unterminated class reference")
		}
		class := p.desc[p.pos+1 : p.pos+1+end]
		if class == "" {
			return Type{}, p.fail(p.pos, "empty class name")
		}
		if err := mapping.CheckClassName(class); err != nil {
			offset := p.pos + 1
			var nameErr *mapping.ClassNameError
			if errors.As(err, &nameErr) {
				offset += nameErr.Offset
			}
			return Type{}, p.fail(offset, "%v", err)
		}
		t.Base = 'L'
		t.Class = class
		p.pos += end + 2
	default:
		return Type{}, p.fail(p.pos, "unexpected character %q", c)
	}
	return t, nil
}

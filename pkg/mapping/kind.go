package mapping

import (
	"fmt"
	"strings"
)

// Kind classifies a symbol.
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindMethod
	KindField
	KindParameter

	// kindTotal is the number of kinds including KindUnknown.
	kindTotal = int(iota)
)

var kindNames = [kindTotal]string{
	KindUnknown:   "unknown",
	KindClass:     "class",
	KindMethod:    "method",
	KindField:     "field",
	KindParameter: "parameter",
}

// Kinds lists the valid kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindClass, KindMethod, KindField, KindParameter}
}

// ParseKind resolves a kind by its lowercase name.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindUnknown, false
}

func (k Kind) String() string {
	if k < KindUnknown || int(k) >= kindTotal {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsMember reports whether k is a method or a field.
func (k Kind) IsMember() bool {
	return k == KindMethod || k == KindField
}

package ast

import "fmt"

// Visibility of a declaration, ordered from restricted to unrestricted.
// Default is a placeholder meaning "use the declaration kind's default";
// it never survives into a resolved visibility.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityPrivate
	VisibilityInternal
	VisibilityPublic
	VisibilityExternal
)

// String renders the source spelling of a resolved visibility. Formatting
// Default or an out-of-range value means an upstream pass handed us a
// placeholder, which is a defect, not a diagnostic.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityInternal:
		return "internal"
	case VisibilityPublic:
		return "public"
	case VisibilityExternal:
		return "external"
	default:
		panic(fmt.Sprintf("ast: invalid visibility specifier %d", int(v)))
	}
}

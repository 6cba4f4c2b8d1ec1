package resolve

import (
	"strings"

	"github.com/npillmayer/xstyle/manifest"
)

// Ref references a style rule at a render call site. Static refs address a
// style rule; dynamic refs address a dynamic style rule and carry its
// parameter values, positionally.
type Ref struct {
	Key     manifest.Key // Key.Module may be empty for bare names
	Values  []any
	dynamic bool
}

// R creates a ref to a static style rule. ref is either a bare name or a
// qualified reference "Module.name".
func R(ref string) Ref {
	return Ref{Key: manifest.ParseKey(ref, "")}
}

// Dyn creates a ref to a dynamic style rule, with values for the rule's
// parameters.
func Dyn(ref string, values ...any) Ref {
	return Ref{Key: manifest.ParseKey(ref, ""), Values: values, dynamic: true}
}

// IsDynamic is true for refs to dynamic style rules.
func (r Ref) IsDynamic() bool {
	return r.dynamic
}

// HasComputed is true if any of the ref's values is computed, i.e. has to be
// unwrapped before it can be rendered.
func (r Ref) HasComputed() bool {
	for _, v := range r.Values {
		if _, ok := v.(Computed); ok {
			return true
		}
	}
	return false
}

// in resolves a bare name against module.
func (r Ref) in(module string) manifest.Key {
	return r.Key.In(module)
}

func (r Ref) String() string {
	if r.dynamic {
		return "dyn:" + r.Key.String()
	}
	return r.Key.String()
}

func refsString(module string, refs []Ref) string {
	var b strings.Builder
	for i, r := range refs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.in(module).String())
	}
	return b.String()
}

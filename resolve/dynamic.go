package resolve

import (
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/npillmayer/xstyle/css"
	"github.com/npillmayer/xstyle/manifest"
	"github.com/npillmayer/xstyle/registry"
)

// Computed is a value which is the result of a nested computation, e.g. a
// reference to a CSS variable. Computed values are unwrapped before they are
// rendered; Compute may return another Computed.
type Computed interface {
	Compute() any
}

// ComputedFunc adapts a function to interface Computed.
type ComputedFunc func() any

func (f ComputedFunc) Compute() any {
	return f()
}

// VarValue is a computed value reading a CSS variable, i.e. "var(--x…)".
// The variable is looked up when the value is rendered.
func VarValue(vars *registry.Vars, key manifest.Key) Computed {
	return ComputedFunc(func() any {
		return registry.VarExpr(vars.Ref(key))
	})
}

// ConstValue is a computed value producing the literal of a constant.
func ConstValue(consts registry.Consts, key manifest.Key) Computed {
	return ComputedFunc(func() any {
		return consts.Ref(key)
	})
}

// Dynamic is the result of resolving a dynamic style rule: its class string
// and the custom property bindings to set as inline style.
type Dynamic struct {
	Class string
	Vars  css.Declarations
}

// maxComputeDepth limits unwrapping of nested computed values.
const maxComputeDepth = 16

// ResolveDynamic resolves a dynamic rule with runtime values.
//
// The class string contains the classes of the rule's static and dynamic
// properties, merged per property, followed by the rule's scoped class.
// Vars holds one binding per parameter, in the parameter order of the
// entry, binding the parameter's custom property to its stringified value.
// values are positional and must match the rule's parameters in number.
//
// If hasComputed is set, values may be Computed and are unwrapped first.
// Results depend on entry and values only: identical input yields identical
// output.
func ResolveDynamic(entry manifest.DynamicRule, key manifest.Key, values []any, hasComputed bool) Dynamic {
	assertThat(len(values) == len(entry.Params),
		"dynamic style rule %s expects %d values %v, got %d",
		key, len(entry.Params), entry.ParamNames(), len(values))
	pm := &PropMap{}
	pm.Fold(entry.Static).Fold(entry.Dynamic)
	classes := pm.Classes()
	if entry.Class != "" && !slices.Contains(classes, entry.Class) {
		classes = append(classes, entry.Class)
	}
	dyn := Dynamic{
		Class: strings.Join(classes, " "),
		Vars:  make(css.Declarations, len(entry.Params)),
	}
	for i, p := range entry.Params {
		dyn.Vars[i] = css.KeyValue{Key: p.Var, Value: css.Property(stringify(key, p.Name, values[i], hasComputed))}
	}
	tracer().Debugf("dynamic %s ⇒ class=%q, vars=%q", key, dyn.Class, dyn.Vars.String())
	return dyn
}

// stringify renders a runtime value as CSS text.
func stringify(key manifest.Key, param string, v any, hasComputed bool) string {
	if hasComputed {
		for depth := 0; ; depth++ {
			c, ok := v.(Computed)
			if !ok {
				break
			}
			assertThat(depth < maxComputeDepth, "computed value for %s(%s) nested too deeply", key, param)
			v = c.Compute()
		}
	} else {
		_, isComputed := v.(Computed)
		assertThat(!isComputed, "computed value for %s(%s), but call site is not flagged as computed", key, param)
	}
	assertThat(v != nil, "nil value for parameter %s of dynamic style rule %s", param, key)
	switch x := v.(type) {
	case css.DimenT:
		return x.String()
	case css.Property:
		return x.String()
	}
	s, err := cast.ToStringE(v)
	assertThat(err == nil, "cannot render value of type %T for %s(%s)", v, key, param)
	return s
}

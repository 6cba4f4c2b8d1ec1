package attrs

import (
	"sort"
	"strings"

	"github.com/npillmayer/xstyle/css"
	"github.com/npillmayer/xstyle/either"
)

// Style is a caller-supplied inline style override: either a list of
// declarations or a pre-formatted style string. The zero value is no
// override.
type Style = either.Either[css.Declarations, string]

// NoStyle is the empty style override.
var NoStyle Style

// StyleDecls creates a style override from declarations.
func StyleDecls(decls ...css.KeyValue) Style {
	return either.Left[css.Declarations, string](decls)
}

// StyleText creates a style override from a pre-formatted string,
// e.g. "color: red; margin: 0".
func StyleText(text string) Style {
	return either.Right[css.Declarations](text)
}

// StyleMap creates a style override from a property→value map. Maps have no
// order; declarations are sorted by property.
func StyleMap(m map[string]string) Style {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	decls := make(css.Declarations, len(keys))
	for i, k := range keys {
		decls[i] = css.Decl(k, m[k])
	}
	return StyleDecls(decls...)
}

// Assemble creates Attrs from resolution results.
//
// classes are class strings (e.g. the class string of static refs and those
// of dynamic refs); they are concatenated with single spaces, without
// de-duplication. vars are custom property bindings of dynamic rules,
// rendered as `--prop: value` pairs. The override is appended after the
// bindings, so that it takes precedence in the browser.
// Empty results leave the respective attribute absent.
func Assemble(classes []string, vars css.Declarations, override Style) Attrs {
	cls := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			cls = append(cls, c)
		}
	}
	styles := make([]string, 0, 2)
	if len(vars) > 0 {
		styles = append(styles, vars.String())
	}
	text := either.Fold(override, css.Declarations.String, func(s string) string { return s })
	if text = trimStyle(text); text != "" {
		styles = append(styles, text)
	}
	a := Attrs{
		class: strings.Join(cls, " "),
		style: strings.Join(styles, "; "),
	}
	tracer().Debugf("assembled attributes%s", a)
	return a
}

// trimStyle removes surrounding white space and trailing semicolons.
func trimStyle(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "; \t\n")
}

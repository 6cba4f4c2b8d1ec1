/*
Package attrs assembles the HTML attributes produced by style resolution.

The result of resolving a list of style refs is an Attrs value with two
optional fields, class and style. Empty fields are absent: an element
without classes gets no class attribute at all, never `class=""`.

Attrs values are immutable. Templating adapters consume them through
ToPairs, which returns escaped (name, value) pairs ready to be spread into
an element's attribute list.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package attrs

import (
	"iter"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"

	"github.com/npillmayer/xstyle/maybe"
)

// tracer traces with key 'xstyle.attrs'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle.attrs")
}

// Attrs holds the class and style attributes for an element.
// The zero value has neither.
type Attrs struct {
	class string
	style string
}

// Class returns the class attribute, if present.
func (a Attrs) Class() maybe.Maybe[string] {
	return maybe.NonEmpty(a.class)
}

// Style returns the style attribute, if present.
func (a Attrs) Style() maybe.Maybe[string] {
	return maybe.NonEmpty(a.style)
}

// IsEmpty is true if neither attribute is present.
func (a Attrs) IsEmpty() bool {
	return a.class == "" && a.style == ""
}

// Pair is an attribute name together with its (escaped) value.
type Pair struct {
	Name  string
	Value string
}

// ToPairs returns the present attributes as (name, value) pairs, style
// first. Values are HTML-escaped and may be put between double quotes as
// they are.
func (a Attrs) ToPairs() []Pair {
	pairs := make([]Pair, 0, 2)
	for name, value := range a.All() {
		pairs = append(pairs, Pair{Name: name, Value: html.EscapeString(value)})
	}
	return pairs
}

// All iterates over the present attributes, style first. Values are not
// escaped. Attrs is tiny; there is no indexed access.
func (a Attrs) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if a.style != "" && !yield("style", a.style) {
			return
		}
		if a.class != "" {
			yield("class", a.class)
		}
	}
}

// String renders the attributes for inclusion in an element's start tag,
// e.g. ` style="--x: 1" class="c1 p1"`. Empty Attrs render as "".
func (a Attrs) String() string {
	var b strings.Builder
	for _, p := range a.ToPairs() {
		b.WriteByte(' ')
		b.WriteString(p.Name)
		b.WriteString(`="`)
		b.WriteString(p.Value)
		b.WriteByte('"')
	}
	return b.String()
}

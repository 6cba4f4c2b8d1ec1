package resolve

import (
	"strings"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/npillmayer/xstyle/manifest"
)

// PropMap is the accumulator for folding property→class mappings.
// Properties keep the position of their first appearance; their class is
// the one folded in last. The zero value is an empty map.
type PropMap struct {
	classes *orderedmap.OrderedMap[string, string]
}

// Fold merges a mapping into pm. For properties already present, the class
// of pc overrides the present class.
func (pm *PropMap) Fold(pc manifest.PropClasses) *PropMap {
	if pm.classes == nil {
		pm.classes = orderedmap.NewOrderedMap[string, string]()
	}
	for _, p := range pc {
		pm.classes.Set(p.Property, p.Class) // keeps the position of present keys
	}
	return pm
}

// Get returns the class for a property.
func (pm *PropMap) Get(property string) (string, bool) {
	if pm.classes == nil {
		return "", false
	}
	return pm.classes.Get(property)
}

// Len returns the number of properties.
func (pm *PropMap) Len() int {
	if pm.classes == nil {
		return 0
	}
	return pm.classes.Len()
}

// Props returns the folded mapping in property order.
func (pm *PropMap) Props() manifest.PropClasses {
	pc := make(manifest.PropClasses, 0, pm.Len())
	if pm.classes == nil {
		return pc
	}
	for el := pm.classes.Front(); el != nil; el = el.Next() {
		pc = append(pc, manifest.PropClass{Property: el.Key, Class: el.Value})
	}
	return pc
}

// Classes returns the distinct classes of the mapping, in property order.
// An atomic class may implement more than one property (shorthands), it is
// listed once.
func (pm *PropMap) Classes() []string {
	classes := make([]string, 0, pm.Len())
	if pm.classes == nil {
		return classes
	}
	seen := make(map[string]bool, pm.Len())
	for el := pm.classes.Front(); el != nil; el = el.Next() {
		if c := el.Value; c != "" && !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	return classes
}

// String returns the space-separated class string.
func (pm *PropMap) String() string {
	return strings.Join(pm.Classes(), " ")
}

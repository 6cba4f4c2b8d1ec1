package css

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a single CSS declaration, e.g. "padding: 4px".
type KeyValue struct {
	Key   string
	Value Property
}

func (kv KeyValue) String() string {
	return kv.Key + ": " + kv.Value.String()
}

// Declarations is an ordered list of CSS declarations. Order matters: for
// duplicate keys the later declaration wins, just as it does in a browser.
type Declarations []KeyValue

// Decl is a shortcut for creating a single declaration.
func Decl(key string, value string) KeyValue {
	return KeyValue{Key: key, Value: Property(value)}
}

// String renders declarations in inline-style format, i.e. "a: 1; b: 2".
func (d Declarations) String() string {
	var b strings.Builder
	for i, kv := range d {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(kv.String())
	}
	return b.String()
}

// Get returns the value of the last declaration for key.
func (d Declarations) Get(key string) (Property, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Key == key {
			return d[i].Value, true
		}
	}
	return NullStyle, false
}

// ParseDeclarations parses the body of a CSS rule, e.g.
//
//	color: red; padding: 4px 8px
//
// into a list of declarations. Property keys are lower-cased. Values are kept
// as written, except for surrounding white space. `!important` markers are
// rejected: precedence in an atomic stylesheet is governed by ref order only.
func ParseDeclarations(text string) (Declarations, error) {
	body := strings.TrimSpace(text)
	if body != "" && !strings.HasSuffix(body, ";") {
		body += ";" // douceur drops the value of an unterminated last declaration
	}
	decls, err := parser.ParseDeclarations(body)
	if err != nil {
		return nil, fmt.Errorf("css: cannot parse declarations %q: %w", text, err)
	}
	d := make(Declarations, 0, len(decls))
	for _, decl := range decls {
		if decl.Important {
			return nil, fmt.Errorf("css: !important not supported for property %q", decl.Property)
		}
		key := strings.ToLower(strings.TrimSpace(decl.Property))
		value := strings.TrimSpace(decl.Value)
		if key == "" || value == "" {
			return nil, fmt.Errorf("css: incomplete declaration %q in %q", decl.String(), text)
		}
		d = append(d, KeyValue{Key: key, Value: Property(value)})
	}
	tracer().Debugf("parsed %d declarations from %q", len(d), text)
	return d, nil
}

// IsCustomProperty is a predicate for CSS custom properties (“variables”),
// which start with a double dash.
func IsCustomProperty(key string) bool {
	return strings.HasPrefix(key, "--") && len(key) > 2
}

package registry

import (
	"fmt"

	"go.uber.org/multierr"
)

// Pair is a single (name, value) definition, as handed over by the
// definition layer.
type Pair[V any] struct {
	Name  string
	Value V
}

// P is a shortcut for creating a definition pair.
func P[V any](name string, value V) Pair[V] {
	return Pair[V]{Name: name, Value: value}
}

// Define validates a list of definitions: every name has to be a valid
// entity name, and no name may occur twice. All problems are reported
// together; duplicate names are reported with the offending name.
// On success, Define returns the definitions unchanged.
func Define[V any](module string, pairs []Pair[V]) ([]Pair[V], error) {
	var err error
	if !ValidName(module, true) {
		err = multierr.Append(err, fmt.Errorf("%w: invalid module identifier %q", ErrMalformed, module))
	}
	seen := make(map[string]bool, len(pairs))
	for i, p := range pairs {
		if !ValidName(p.Name, false) {
			err = multierr.Append(err, fmt.Errorf("%w: invalid name %q at position %d in module %s",
				ErrMalformed, p.Name, i, module))
			continue
		}
		if seen[p.Name] {
			err = multierr.Append(err, fmt.Errorf("%w: name %q defined more than once in module %s",
				ErrDuplicate, p.Name, module))
			continue
		}
		seen[p.Name] = true
	}
	if err != nil {
		tracer().Errorf("definitions for module %s rejected: %v", module, err)
		return nil, err
	}
	return pairs, nil
}

// MustDefine is like Define, but panics for invalid definitions.
func MustDefine[V any](module string, pairs []Pair[V]) []Pair[V] {
	pairs, err := Define(module, pairs)
	if err != nil {
		panic(err)
	}
	return pairs
}

// Pairs converts an untyped keyword list, i.e. alternating names and values
//
//	"gap", "4px", "half", "50"
//
// into definition pairs. Input of any other shape is malformed.
func Pairs(raw ...any) ([]Pair[string], error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: expected a list of name/value pairs, got %d items", ErrMalformed, len(raw))
	}
	pairs := make([]Pair[string], 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		name, ok := raw[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected name at position %d, got %T", ErrMalformed, i, raw[i])
		}
		value, ok := raw[i+1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: value for %q must be a string, got %T", ErrMalformed, name, raw[i+1])
		}
		pairs = append(pairs, Pair[string]{Name: name, Value: value})
	}
	return pairs, nil
}

// ValidName checks entity names and module identifiers. Names consist of
// letters, digits, '_' and '-', and do not start with a digit or a dash.
// Module identifiers may in addition be dotted paths of such names.
func ValidName(name string, dotted bool) bool {
	if name == "" {
		return false
	}
	start := true
	for _, r := range name {
		switch {
		case r == '.' && dotted:
			if start {
				return false
			}
			start = true
			continue
		case r == '_' || isLetter(r):
		case r == '-' || isDigit(r):
			if start {
				return false
			}
		default:
			return false
		}
		start = false
	}
	return !start
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

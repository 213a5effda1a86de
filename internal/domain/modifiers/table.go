// Package modifiers provides the type grammar tables and the procedural
// modifiers that draw structurally valid but incompatible replacements
// from them.
package modifiers

import (
	"errors"
	"fmt"

	m "github.com/mouse-blink/mistype/internal/model"
)

// Errors surfaced when a candidate set cannot be produced. Callers treat
// both as "do not mutate this site"; only ErrEmptyCandidateSet indicates a
// configuration problem worth logging.
var (
	ErrUnsupportedShape  = errors.New("unsupported annotation shape")
	ErrEmptyCandidateSet = errors.New("empty candidate set")
)

// maxContainerDepth bounds recursion into nested generics: one container
// plus one nested wrapper, e.g. List[Optional[int]]. Deeper nesting is
// treated as unsupported rather than guessed at.
const maxContainerDepth = 2

// Table holds the incompatible-replacement policy: per-primitive swap
// lists, a separate swap list for Dict key positions (key types have
// different validity constraints than value types), and the recognized
// container identifiers per arity.
type Table struct {
	Primitives map[string][]string
	DictKeys   map[string][]string
	Generic1   map[string]struct{}
	Generic2   map[string]struct{}
}

// DefaultTable returns the built-in replacement policy. Every swap list
// excludes the original identifier, which is what guarantees that a chosen
// replacement is never shape-equal to the original.
func DefaultTable() *Table {
	return &Table{
		Primitives: map[string][]string{
			"int":   {"str", "float", "bool"},
			"str":   {"int", "bytes", "list"},
			"float": {"int", "str"},
			"bool":  {"int", "str"},
			"bytes": {"str"},
			"list":  {"dict", "set", "tuple"},
			"dict":  {"list", "set"},
			"set":   {"list", "frozenset"},
			"tuple": {"list"},
		},
		DictKeys: map[string][]string{
			"str":   {"int", "bytes", "list"},
			"int":   {"str", "bytes", "tuple"},
			"bytes": {"str", "int"},
			"float": {"int", "str"},
			"bool":  {"int", "str"},
			"tuple": {"str", "int"},
		},
		Generic1: containerSet("List", "Set", "Tuple", "FrozenSet"),
		Generic2: containerSet("Dict"),
	}
}

func containerSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

// Candidates returns the structurally valid incompatible replacements for
// shape. Optional shapes have exactly one deterministic candidate: the
// unwrapped inner shape. Generic2 shapes must go through SlotCandidates
// because choosing the mutated slot consumes a random draw that belongs to
// the selector, not the table.
func (t *Table) Candidates(shape *m.TypeShape) ([]*m.TypeShape, error) {
	if shape == nil {
		return nil, ErrUnsupportedShape
	}

	switch shape.Kind {
	case m.ShapeOptional:
		return []*m.TypeShape{shape.Inner}, nil
	case m.ShapePrimitive:
		return t.primitiveCandidates(shape.Name, t.Primitives)
	case m.ShapeGeneric1:
		if _, ok := t.Generic1[shape.Name]; !ok {
			return nil, fmt.Errorf("%w: container %s", ErrUnsupportedShape, shape.Name)
		}

		inner, err := t.innerCandidates(shape.Inner, 1, t.Primitives)
		if err != nil {
			return nil, err
		}

		out := make([]*m.TypeShape, 0, len(inner))
		for _, c := range inner {
			out = append(out, m.NewGeneric1(shape.Name, c))
		}

		return out, nil
	case m.ShapeGeneric2:
		return nil, fmt.Errorf("%w: arity-2 generic needs a slot choice", ErrUnsupportedShape)
	}

	return nil, ErrUnsupportedShape
}

// SlotCandidates returns replacements for a Generic2 shape with either the
// key or the value slot mutated, leaving the other slot untouched. Key
// positions draw from the dedicated DictKeys table.
func (t *Table) SlotCandidates(shape *m.TypeShape, key bool) ([]*m.TypeShape, error) {
	if shape == nil || shape.Kind != m.ShapeGeneric2 {
		return nil, ErrUnsupportedShape
	}

	if _, ok := t.Generic2[shape.Name]; !ok {
		return nil, fmt.Errorf("%w: container %s", ErrUnsupportedShape, shape.Name)
	}

	primitives := t.Primitives
	slot := shape.Value

	if key {
		primitives = t.DictKeys
		slot = shape.Key
	}

	candidates, err := t.innerCandidates(slot, 1, primitives)
	if err != nil {
		return nil, err
	}

	out := make([]*m.TypeShape, 0, len(candidates))

	for _, c := range candidates {
		if key {
			out = append(out, m.NewGeneric2(shape.Name, c, shape.Value))
		} else {
			out = append(out, m.NewGeneric2(shape.Name, shape.Key, c))
		}
	}

	return out, nil
}

// innerCandidates recurses toward the innermost resolvable primitive,
// rebuilding the wrappers around each candidate on the way out.
func (t *Table) innerCandidates(shape *m.TypeShape, depth int, primitives map[string][]string) ([]*m.TypeShape, error) {
	if shape == nil {
		return nil, ErrUnsupportedShape
	}

	switch shape.Kind {
	case m.ShapePrimitive:
		return t.primitiveCandidates(shape.Name, primitives)
	case m.ShapeGeneric1:
		if depth >= maxContainerDepth {
			return nil, fmt.Errorf("%w: nesting deeper than %d containers", ErrUnsupportedShape, maxContainerDepth)
		}

		if _, ok := t.Generic1[shape.Name]; !ok {
			return nil, fmt.Errorf("%w: container %s", ErrUnsupportedShape, shape.Name)
		}

		inner, err := t.innerCandidates(shape.Inner, depth+1, t.Primitives)
		if err != nil {
			return nil, err
		}

		out := make([]*m.TypeShape, 0, len(inner))
		for _, c := range inner {
			out = append(out, m.NewGeneric1(shape.Name, c))
		}

		return out, nil
	case m.ShapeOptional:
		if depth >= maxContainerDepth {
			return nil, fmt.Errorf("%w: nesting deeper than %d containers", ErrUnsupportedShape, maxContainerDepth)
		}

		inner, err := t.innerCandidates(shape.Inner, depth+1, t.Primitives)
		if err != nil {
			return nil, err
		}

		out := make([]*m.TypeShape, 0, len(inner))
		for _, c := range inner {
			out = append(out, m.NewOptional(c))
		}

		return out, nil
	case m.ShapeGeneric2:
		return nil, fmt.Errorf("%w: nested mapping", ErrUnsupportedShape)
	}

	return nil, ErrUnsupportedShape
}

func (t *Table) primitiveCandidates(name string, primitives map[string][]string) ([]*m.TypeShape, error) {
	names, ok := primitives[name]
	if !ok {
		return nil, fmt.Errorf("%w: primitive %s", ErrUnsupportedShape, name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: primitive %s", ErrEmptyCandidateSet, name)
	}

	out := make([]*m.TypeShape, 0, len(names))
	for _, n := range names {
		out = append(out, m.NewPrimitive(n))
	}

	return out, nil
}

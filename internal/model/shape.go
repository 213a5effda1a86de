package model

import (
	"errors"
	"fmt"
)

// ShapeKind discriminates the TypeShape tagged union.
type ShapeKind int

// Recognized annotation shapes.
const (
	ShapePrimitive ShapeKind = iota
	ShapeGeneric1
	ShapeGeneric2
	ShapeOptional
)

// ErrUnparsableAnnotation reports an annotation that does not match the
// recognized type grammar. Callers treat such annotations as unsupported
// sites, never as fatal errors.
var ErrUnparsableAnnotation = errors.New("annotation does not match the type grammar")

// TypeShape is the structural classification of a type annotation. Exactly
// one variant field set is populated, depending on Kind: Primitive uses
// Name; Generic1 uses Name and Inner; Generic2 uses Name, Key and Value;
// Optional uses Inner (Name is fixed to "Optional").
type TypeShape struct {
	Kind  ShapeKind
	Name  string
	Inner *TypeShape
	Key   *TypeShape
	Value *TypeShape
}

// NewPrimitive builds a Primitive shape.
func NewPrimitive(name string) *TypeShape {
	return &TypeShape{Kind: ShapePrimitive, Name: name}
}

// NewGeneric1 builds an arity-1 parametrized generic such as List[int].
func NewGeneric1(container string, inner *TypeShape) *TypeShape {
	return &TypeShape{Kind: ShapeGeneric1, Name: container, Inner: inner}
}

// NewGeneric2 builds an arity-2 parametrized generic such as Dict[str, int].
func NewGeneric2(container string, key, value *TypeShape) *TypeShape {
	return &TypeShape{Kind: ShapeGeneric2, Name: container, Key: key, Value: value}
}

// NewOptional builds an optional wrapper such as Optional[str].
func NewOptional(inner *TypeShape) *TypeShape {
	return &TypeShape{Kind: ShapeOptional, Name: "Optional", Inner: inner}
}

// String serializes the shape to its canonical annotation text. Parsing is
// strict enough that ParseShape(s.String()) always round-trips, which is
// what makes span-splice rewriting lossless.
func (s *TypeShape) String() string {
	switch s.Kind {
	case ShapePrimitive:
		return s.Name
	case ShapeGeneric1:
		return s.Name + "[" + s.Inner.String() + "]"
	case ShapeGeneric2:
		return s.Name + "[" + s.Key.String() + ", " + s.Value.String() + "]"
	case ShapeOptional:
		return "Optional[" + s.Inner.String() + "]"
	}

	return ""
}

// Equal reports structural shape equality.
func (s *TypeShape) Equal(other *TypeShape) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.Kind != other.Kind || s.Name != other.Name {
		return false
	}

	switch s.Kind {
	case ShapeGeneric1, ShapeOptional:
		return s.Inner.Equal(other.Inner)
	case ShapeGeneric2:
		return s.Key.Equal(other.Key) && s.Value.Equal(other.Value)
	}

	return true
}

// ParseShape parses annotation text into a TypeShape. The grammar is
// deliberately closed: a bare identifier, Container[T], Container[K, V] or
// Optional[T], with ", " as the only separator and no other whitespace.
// Anything else (dotted names, unions, string literals, arity >= 3) returns
// ErrUnparsableAnnotation so the site is left untouched.
func ParseShape(text string) (*TypeShape, error) {
	p := &shapeParser{input: text}

	shape, err := p.parseShape()
	if err != nil {
		return nil, err
	}

	if p.pos != len(p.input) {
		return nil, fmt.Errorf("%w: trailing input at byte %d of %q", ErrUnparsableAnnotation, p.pos, text)
	}

	return shape, nil
}

type shapeParser struct {
	input string
	pos   int
}

func (p *shapeParser) parseShape() (*TypeShape, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	if !p.eat("[") {
		return NewPrimitive(name), nil
	}

	first, err := p.parseShape()
	if err != nil {
		return nil, err
	}

	if p.eat(", ") {
		second, err := p.parseShape()
		if err != nil {
			return nil, err
		}

		if !p.eat("]") {
			return nil, fmt.Errorf("%w: missing closing bracket in %q", ErrUnparsableAnnotation, p.input)
		}

		return NewGeneric2(name, first, second), nil
	}

	if !p.eat("]") {
		return nil, fmt.Errorf("%w: missing closing bracket in %q", ErrUnparsableAnnotation, p.input)
	}

	if name == "Optional" {
		return NewOptional(first), nil
	}

	return NewGeneric1(name, first), nil
}

func (p *shapeParser) ident() (string, error) {
	start := p.pos

	for p.pos < len(p.input) && isIdentByte(p.input[p.pos], p.pos > start) {
		p.pos++
	}

	if p.pos == start {
		return "", fmt.Errorf("%w: expected identifier at byte %d of %q", ErrUnparsableAnnotation, p.pos, p.input)
	}

	return p.input[start:p.pos], nil
}

func (p *shapeParser) eat(token string) bool {
	if len(p.input)-p.pos < len(token) || p.input[p.pos:p.pos+len(token)] != token {
		return false
	}

	p.pos += len(token)

	return true
}

func isIdentByte(b byte, continuation bool) bool {
	if b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
		return true
	}

	return continuation && b >= '0' && b <= '9'
}

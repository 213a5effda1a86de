package model

import (
	"errors"
	"testing"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *TypeShape
	}{
		{
			name: "bare primitive",
			text: "int",
			want: NewPrimitive("int"),
		},
		{
			name: "underscore identifier",
			text: "_MyType",
			want: NewPrimitive("_MyType"),
		},
		{
			name: "arity one generic",
			text: "List[int]",
			want: NewGeneric1("List", NewPrimitive("int")),
		},
		{
			name: "arity two generic",
			text: "Dict[str, int]",
			want: NewGeneric2("Dict", NewPrimitive("str"), NewPrimitive("int")),
		},
		{
			name: "optional wrapper",
			text: "Optional[str]",
			want: NewOptional(NewPrimitive("str")),
		},
		{
			name: "nested generic",
			text: "List[Optional[int]]",
			want: NewGeneric1("List", NewOptional(NewPrimitive("int"))),
		},
		{
			name: "mapping with generic value",
			text: "Dict[str, List[int]]",
			want: NewGeneric2("Dict", NewPrimitive("str"), NewGeneric1("List", NewPrimitive("int"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShape(tt.text)
			if err != nil {
				t.Fatalf("ParseShape(%q) error = %v", tt.text, err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("ParseShape(%q) = %s, want %s", tt.text, got, tt.want)
			}

			if got.String() != tt.text {
				t.Errorf("round trip of %q produced %q", tt.text, got.String())
			}
		})
	}
}

func TestParseShape_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "dotted name", text: "typing.List[int]"},
		{name: "union syntax", text: "int | None"},
		{name: "string literal", text: `"User"`},
		{name: "no separator space", text: "Dict[str,int]"},
		{name: "extra space", text: "Dict[str,  int]"},
		{name: "arity three", text: "Tuple[int, str, bool]"},
		{name: "missing bracket", text: "List[int"},
		{name: "trailing text", text: "List[int] "},
		{name: "leading digit", text: "3int"},
		{name: "empty brackets", text: "List[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShape(tt.text)
			if !errors.Is(err, ErrUnparsableAnnotation) {
				t.Errorf("ParseShape(%q) error = %v, want ErrUnparsableAnnotation", tt.text, err)
			}
		})
	}
}

func TestTypeShape_Equal(t *testing.T) {
	a := NewGeneric2("Dict", NewPrimitive("str"), NewGeneric1("List", NewPrimitive("int")))
	b := NewGeneric2("Dict", NewPrimitive("str"), NewGeneric1("List", NewPrimitive("int")))
	c := NewGeneric2("Dict", NewPrimitive("str"), NewGeneric1("List", NewPrimitive("str")))

	if !a.Equal(b) {
		t.Error("structurally identical shapes compare unequal")
	}

	if a.Equal(c) {
		t.Error("shapes differing in the value slot compare equal")
	}

	if a.Equal(nil) {
		t.Error("non-nil shape compares equal to nil")
	}

	var nilShape *TypeShape
	if !nilShape.Equal(nil) {
		t.Error("nil shapes compare unequal")
	}

	if NewOptional(NewPrimitive("int")).Equal(NewGeneric1("Optional", NewPrimitive("int"))) {
		t.Error("optional wrapper compares equal to a generic of the same spelling")
	}
}

package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/mistype/internal/model"
)

func TestAnnotationSites_FunctionSignature(t *testing.T) {
	source := []byte("def calculate(x: int, y: str = \"a\") -> float:\n    return 0.0\n")

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 3)

	assert.Equal(t, m.SiteParameter, sites[0].Kind)
	assert.Equal(t, "int", sites[0].Text)
	assert.Equal(t, "calculate", sites[0].Entity)
	assert.Equal(t, 1, sites[0].Line)

	assert.Equal(t, m.SiteParameter, sites[1].Kind)
	assert.Equal(t, "str", sites[1].Text)

	assert.Equal(t, m.SiteReturn, sites[2].Kind)
	assert.Equal(t, "float", sites[2].Text)

	for _, site := range sites {
		assert.Equal(t, site.Text, string(source[site.Span.Start:site.Span.End]))
		require.NotNil(t, site.Shape)
		assert.Equal(t, site.Text, site.Shape.String())
		assert.True(t, site.Removable)
	}
}

func TestAnnotationSites_RemoveSpans(t *testing.T) {
	source := []byte("def f(x: int) -> str:\n    return \"\"\n")

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 2)

	// Deleting a parameter annotation takes the ": " with it.
	param := sites[0]
	assert.Equal(t, ": int", string(source[param.RemoveSpan.Start:param.RemoveSpan.End]))

	// Deleting a return annotation takes the arrow with it.
	ret := sites[1]
	assert.Equal(t, " -> str", string(source[ret.RemoveSpan.Start:ret.RemoveSpan.End]))
}

func TestAnnotationSites_Methods(t *testing.T) {
	source := []byte(strings.Join([]string{
		"class Account:",
		"    balance: int = 0",
		"",
		"    def deposit(self, amount: float) -> bool:",
		"        return True",
		"",
	}, "\n"))

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 3)

	assert.Equal(t, m.SiteVariable, sites[0].Kind)
	assert.Equal(t, "Account", sites[0].Entity)
	assert.True(t, sites[0].Removable)

	assert.Equal(t, m.SiteParameter, sites[1].Kind)
	assert.Equal(t, "Account.deposit", sites[1].Entity)

	assert.Equal(t, m.SiteReturn, sites[2].Kind)
	assert.Equal(t, "Account.deposit", sites[2].Entity)
}

func TestAnnotationSites_UntypedSelfIgnored(t *testing.T) {
	source := []byte("class A:\n    def f(self):\n        pass\n")

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestAnnotationSites_NestedFunctions(t *testing.T) {
	source := []byte(strings.Join([]string{
		"def outer(a: int) -> str:",
		"    def inner(b: float) -> bool:",
		"        return True",
		"    return \"\"",
		"",
	}, "\n"))

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 4)

	assert.Equal(t, "outer", sites[0].Entity)
	assert.Equal(t, "outer", sites[1].Entity)
	assert.Equal(t, "outer.inner", sites[2].Entity)
	assert.Equal(t, "outer.inner", sites[3].Entity)
}

func TestAnnotationSites_AnnotatedAssignmentWithoutValue(t *testing.T) {
	source := []byte("x: int\ny: str = \"a\"\n")

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.False(t, sites[0].Removable, "x: int has no value to fall back to")
	assert.True(t, sites[1].Removable)

	assert.Equal(t, ": str", string(source[sites[1].RemoveSpan.Start:sites[1].RemoveSpan.End]))
}

func TestAnnotationSites_UnrecognizedAnnotationHasNoShape(t *testing.T) {
	source := []byte(strings.Join([]string{
		"def f(a: np.ndarray, b: \"User\", c: int | None, d: int) -> None:",
		"    pass",
		"",
	}, "\n"))

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 5)

	assert.Nil(t, sites[0].Shape, "dotted name")
	assert.Nil(t, sites[1].Shape, "string annotation")
	assert.Nil(t, sites[2].Shape, "union syntax")
	assert.NotNil(t, sites[3].Shape)
	assert.NotNil(t, sites[4].Shape, "None parses as a bare identifier")
}

func TestAnnotationSites_StringContentsIgnored(t *testing.T) {
	source := []byte("s = \"def g(x: int) -> str:\"\n")

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestAnnotationSites_EntityFilter(t *testing.T) {
	source := []byte(strings.Join([]string{
		"def keep(a: int) -> str:",
		"    return \"\"",
		"",
		"def drop(b: float) -> bool:",
		"    def nested(c: int) -> int:",
		"        return c",
		"    return True",
		"",
	}, "\n"))

	filter := func(entity string) bool { return !strings.HasPrefix(entity, "drop") }

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, filter)

	require.NoError(t, err)
	require.Len(t, sites, 2)

	// Excluding an entity excludes everything nested inside it.
	for _, site := range sites {
		assert.Equal(t, "keep", site.Entity)
	}
}

func TestAnnotationSites_SyntaxError(t *testing.T) {
	source := []byte("def f(x: int:\n    pass\n")

	_, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.ErrorIs(t, err, ErrInvalidSyntax)
}

func TestAnnotationSites_TraversalOrder(t *testing.T) {
	source := []byte(strings.Join([]string{
		"count: int = 0",
		"",
		"def first(a: str) -> bool:",
		"    return True",
		"",
		"def second(b: float) -> int:",
		"    return 1",
		"",
	}, "\n"))

	sites, err := NewTreeSitterFileAdapter().AnnotationSites(source, nil)

	require.NoError(t, err)
	require.Len(t, sites, 5)

	for i := 1; i < len(sites); i++ {
		assert.Greater(t, sites[i].Span.Start, sites[i-1].Span.Start, "sites out of textual order")
	}
}

package modifiers

import (
	"errors"
	"math/rand"
	"testing"

	m "github.com/mouse-blink/mistype/internal/model"
)

func siteFor(t *testing.T, text string) m.AnnotationSite {
	t.Helper()

	shape, err := m.ParseShape(text)
	if err != nil {
		t.Fatal(err)
	}

	return m.AnnotationSite{
		Kind:      m.SiteParameter,
		Entity:    "calculate",
		Line:      1,
		Text:      text,
		Shape:     shape,
		Removable: true,
	}
}

func TestTypeChangeModifier_Propose(t *testing.T) {
	mod := NewTypeChangeModifier(nil)

	tests := []struct {
		name    string
		text    string
		allowed []string
	}{
		{name: "int", text: "int", allowed: []string{"str", "float", "bool"}},
		{name: "list generic", text: "List[int]", allowed: []string{"List[str]", "List[float]", "List[bool]"}},
		{
			name: "mapping",
			text: "Dict[str, int]",
			allowed: []string{
				"Dict[int, int]", "Dict[bytes, int]", "Dict[list, int]",
				"Dict[str, str]", "Dict[str, float]", "Dict[str, bool]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic test stream

				plan, err := mod.Propose(siteFor(t, tt.text), rng)
				if err != nil {
					t.Fatalf("Propose error = %v", err)
				}

				if plan.Action != m.PlanReplace {
					t.Fatalf("Action = %v, want PlanReplace", plan.Action)
				}

				got := plan.NewShape.String()
				if got == tt.text {
					t.Fatalf("proposal equals the original %q", tt.text)
				}

				found := false

				for _, a := range tt.allowed {
					if got == a {
						found = true

						break
					}
				}

				if !found {
					t.Fatalf("proposal %q outside allowed set %v", got, tt.allowed)
				}
			}
		})
	}
}

func TestTypeChangeModifier_Propose_OptionalUnwraps(t *testing.T) {
	mod := NewTypeChangeModifier(nil)

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic test stream

		plan, err := mod.Propose(siteFor(t, "Optional[str]"), rng)
		if err != nil {
			t.Fatalf("Propose error = %v", err)
		}

		if got := plan.NewShape.String(); got != "str" {
			t.Fatalf("Optional[str] proposal = %q, want str for every seed", got)
		}
	}
}

func TestTypeChangeModifier_Propose_Deterministic(t *testing.T) {
	mod := NewTypeChangeModifier(nil)
	site := siteFor(t, "Dict[str, int]")

	first, err := mod.Propose(site, rand.New(rand.NewSource(7))) //nolint:gosec // Deterministic test stream
	if err != nil {
		t.Fatal(err)
	}

	second, err := mod.Propose(site, rand.New(rand.NewSource(7))) //nolint:gosec // Deterministic test stream
	if err != nil {
		t.Fatal(err)
	}

	if !first.NewShape.Equal(second.NewShape) {
		t.Errorf("same stream produced %s then %s", first.NewShape, second.NewShape)
	}
}

func TestTypeChangeModifier_Propose_Unsupported(t *testing.T) {
	mod := NewTypeChangeModifier(nil)
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // Deterministic test stream

	site := m.AnnotationSite{Text: `"User"`, Shape: nil}
	if _, err := mod.Propose(site, rng); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Propose on unparsed annotation error = %v, want ErrUnsupportedShape", err)
	}

	if _, err := mod.Propose(siteFor(t, "Sequence[int]"), rng); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Propose on unknown container error = %v, want ErrUnsupportedShape", err)
	}
}

func TestTypeChangeModifier_Labels(t *testing.T) {
	mod := NewTypeChangeModifier(nil)

	if mod.Name() != "func_pm_type_change" {
		t.Errorf("Name() = %q", mod.Name())
	}

	if mod.Explanation() != "The type annotations in the code are likely incorrect." {
		t.Errorf("Explanation() = %q", mod.Explanation())
	}
}

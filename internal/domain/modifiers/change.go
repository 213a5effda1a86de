package modifiers

import (
	"math/rand"

	m "github.com/mouse-blink/mistype/internal/model"
)

// TypeChangeModifier swaps an annotation for a structurally valid but
// semantically incompatible one drawn from the incompatibility table.
type TypeChangeModifier struct {
	table *Table
}

// NewTypeChangeModifier constructs a TypeChangeModifier. A nil table means
// the built-in policy.
func NewTypeChangeModifier(table *Table) *TypeChangeModifier {
	if table == nil {
		table = DefaultTable()
	}

	return &TypeChangeModifier{table: table}
}

// Name returns the strategy label.
func (c *TypeChangeModifier) Name() string { return StrategyTypeChange }

// Explanation returns the record explanation for this strategy.
func (c *TypeChangeModifier) Explanation() string {
	return "The type annotations in the code are likely incorrect."
}

// Propose classifies the site's shape and draws one replacement. Generic2
// shapes consume an extra draw to choose the key or value slot; Optional
// shapes consume no candidate draw at all, unwrapping is their single
// deterministic candidate.
func (c *TypeChangeModifier) Propose(site m.AnnotationSite, rng *rand.Rand) (m.MutationPlan, error) {
	shape := site.Shape
	if shape == nil {
		return m.MutationPlan{}, ErrUnsupportedShape
	}

	var (
		candidates []*m.TypeShape
		err        error
	)

	if shape.Kind == m.ShapeGeneric2 {
		candidates, err = c.table.SlotCandidates(shape, rng.Intn(2) == 0)
	} else {
		candidates, err = c.table.Candidates(shape)
	}

	if err != nil {
		return m.MutationPlan{}, err
	}

	chosen := candidates[0]
	if shape.Kind != m.ShapeOptional {
		chosen = candidates[rng.Intn(len(candidates))]
	}

	return m.MutationPlan{
		Action:      m.PlanReplace,
		NewShape:    chosen,
		Strategy:    c.Name(),
		Explanation: c.Explanation(),
	}, nil
}

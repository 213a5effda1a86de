package modifiers

import (
	"fmt"
	"math/rand"

	m "github.com/mouse-blink/mistype/internal/model"
)

// TypeRemoveModifier deletes an annotation entirely, including its ":" or
// "->" attachment. Unlike TypeChangeModifier it does not need a parsed
// shape, any annotation can go missing.
type TypeRemoveModifier struct{}

// NewTypeRemoveModifier constructs a TypeRemoveModifier.
func NewTypeRemoveModifier() *TypeRemoveModifier {
	return &TypeRemoveModifier{}
}

// Name returns the strategy label.
func (r *TypeRemoveModifier) Name() string { return StrategyTypeRemove }

// Explanation returns the record explanation for this strategy.
func (r *TypeRemoveModifier) Explanation() string {
	return "There are missing type annotations in the code."
}

// Propose removes the annotation when the surrounding syntax stays valid
// without it.
func (r *TypeRemoveModifier) Propose(site m.AnnotationSite, _ *rand.Rand) (m.MutationPlan, error) {
	if !site.Removable {
		return m.MutationPlan{}, fmt.Errorf("%w: annotation is not removable", ErrUnsupportedShape)
	}

	return m.MutationPlan{
		Action:      m.PlanRemove,
		Strategy:    r.Name(),
		Explanation: r.Explanation(),
	}, nil
}

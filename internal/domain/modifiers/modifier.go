package modifiers

import (
	"fmt"
	"math/rand"

	m "github.com/mouse-blink/mistype/internal/model"
)

// Strategy labels recorded with every mutation.
const (
	StrategyTypeChange = "func_pm_type_change"
	StrategyTypeRemove = "func_pm_type_remove"
)

// Modifier decides, for a single annotation site, what mutation to apply.
// Propose is only called on the mutate path of a Bernoulli trial and may
// consume further draws from rng; it must be deterministic given the site
// and the stream state.
type Modifier interface {
	Name() string
	Explanation() string
	Propose(site m.AnnotationSite, rng *rand.Rand) (m.MutationPlan, error)
}

// ByName constructs the modifier registered under name. Both the short
// form ("change") and the full strategy label are accepted.
func ByName(name string, table *Table) (Modifier, error) {
	switch name {
	case "change", StrategyTypeChange:
		return NewTypeChangeModifier(table), nil
	case "remove", StrategyTypeRemove:
		return NewTypeRemoveModifier(), nil
	}

	return nil, fmt.Errorf("unknown modifier %q", name)
}

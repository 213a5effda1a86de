package domain

import (
	"errors"
	"hash/fnv"
	"math/rand"

	"go.uber.org/zap"

	"github.com/mouse-blink/mistype/internal/domain/modifiers"
	m "github.com/mouse-blink/mistype/internal/model"
)

// Selector runs one Bernoulli trial per annotation site against a seeded
// stream. The draw order per site is fixed: first the trial itself, then,
// only when the trial says mutate, whatever draws the modifier consumes.
// Skipped sites therefore cost exactly one draw, which keeps downstream
// decisions stable under likelihood changes for prior sites.
type Selector struct {
	likelihood float64
	rng        *rand.Rand
	log        *zap.Logger
}

// NewSelector constructs a Selector with its own stream for the given
// seed. Likelihood is clamped to [0, 1].
func NewSelector(seed int64, likelihood float64, log *zap.Logger) *Selector {
	if likelihood < 0 {
		likelihood = 0
	}

	if likelihood > 1 {
		likelihood = 1
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Selector{
		likelihood: likelihood,
		rng:        rand.New(rand.NewSource(seed)), //nolint:gosec // Reproducibility requires a seeded PRNG
		log:        log,
	}
}

// PlanSite decides the fate of a single site. Modifier errors are absorbed
// into a skip so one odd annotation never aborts a file.
func (s *Selector) PlanSite(site m.AnnotationSite, mod modifiers.Modifier) m.PlannedMutation {
	if s.rng.Float64() >= s.likelihood {
		return m.PlannedMutation{Site: site, Plan: m.MutationPlan{Action: m.PlanSkip}}
	}

	plan, err := mod.Propose(site, s.rng)
	if err != nil {
		if errors.Is(err, modifiers.ErrEmptyCandidateSet) {
			s.log.Warn("no replacement candidates for annotation",
				zap.String("entity", site.Entity),
				zap.Int("line", site.Line),
				zap.String("annotation", site.Text))
		}

		return m.PlannedMutation{Site: site, Plan: m.MutationPlan{Action: m.PlanSkip}}
	}

	return m.PlannedMutation{Site: site, Plan: plan}
}

// Plan runs PlanSite over sites in traversal order.
func (s *Selector) Plan(sites []m.AnnotationSite, mod modifiers.Modifier) []m.PlannedMutation {
	planned := make([]m.PlannedMutation, 0, len(sites))
	for _, site := range sites {
		planned = append(planned, s.PlanSite(site, mod))
	}

	return planned
}

// DeriveSeed maps (run seed, unit, modifier) to a per-stream seed so every
// file and strategy combination draws from an independent, reproducible
// sequence.
func DeriveSeed(seed int64, unit, modifier string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(unit))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(modifier))

	return seed ^ int64(h.Sum64()) //nolint:gosec // Deliberate wraparound mixing
}

package domain

import (
	"errors"
	"fmt"
	"sort"

	m "github.com/mouse-blink/mistype/internal/model"
)

// ErrLosslessnessViolation reports that a site's recorded bytes no longer
// match the source it is being applied to. The unit must be abandoned
// rather than written back half-rewritten.
var ErrLosslessnessViolation = errors.New("annotation bytes diverged from source")

// Rewrite applies the non-skip plans to content by splicing byte ranges,
// leaving every byte outside the planned spans untouched. Records are
// returned in traversal order. When no plan applies, content is returned
// as-is.
func Rewrite(content []byte, planned []m.PlannedMutation) ([]byte, []m.MutationRecord, error) {
	applied := make([]m.PlannedMutation, 0, len(planned))

	for _, p := range planned {
		if p.Plan.Action == m.PlanSkip {
			continue
		}

		if p.Plan.Action == m.PlanReplace && p.Plan.NewShape == nil {
			return nil, nil, fmt.Errorf("replace plan without replacement shape at line %d", p.Site.Line)
		}

		applied = append(applied, p)
	}

	if len(applied) == 0 {
		return content, nil, nil
	}

	sort.SliceStable(applied, func(i, j int) bool {
		return applied[i].Site.Span.Start < applied[j].Site.Span.Start
	})

	records := make([]m.MutationRecord, 0, len(applied))
	for _, p := range applied {
		records = append(records, record(p))
	}

	// Splicing back to front keeps earlier offsets valid.
	out := content

	for i := len(applied) - 1; i >= 0; i-- {
		p := applied[i]

		span, replacement := rewriteSpan(p)
		if span.Start < 0 || span.End > len(out) || span.Start > span.End {
			return nil, nil, fmt.Errorf("%w: span [%d, %d) out of bounds at line %d",
				ErrLosslessnessViolation, span.Start, span.End, p.Site.Line)
		}

		if string(out[p.Site.Span.Start:p.Site.Span.End]) != p.Site.Text {
			return nil, nil, fmt.Errorf("%w: expected %q at line %d",
				ErrLosslessnessViolation, p.Site.Text, p.Site.Line)
		}

		out = replaceRange(out, span.Start, span.End, replacement)
	}

	return out, records, nil
}

func rewriteSpan(p m.PlannedMutation) (m.Span, string) {
	if p.Plan.Action == m.PlanRemove {
		return p.Site.RemoveSpan, ""
	}

	return p.Site.Span, p.Plan.NewShape.String()
}

func record(p m.PlannedMutation) m.MutationRecord {
	rewritten := ""
	if p.Plan.Action == m.PlanReplace {
		rewritten = p.Plan.NewShape.String()
	}

	return m.MutationRecord{
		Strategy:    p.Plan.Strategy,
		Explanation: p.Plan.Explanation,
		SiteKind:    p.Site.Kind,
		Entity:      p.Site.Entity,
		Line:        p.Site.Line,
		Original:    p.Site.Text,
		Rewritten:   rewritten,
	}
}

func replaceRange(src []byte, start, end int, replacement string) []byte {
	out := make([]byte, 0, len(src)-(end-start)+len(replacement))
	out = append(out, src[:start]...)
	out = append(out, replacement...)
	out = append(out, src[end:]...)

	return out
}

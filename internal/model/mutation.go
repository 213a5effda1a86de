package model

// SiteKind identifies the syntactic position carrying a type annotation.
type SiteKind string

// Annotation positions the locator recognizes.
const (
	SiteParameter SiteKind = "parameter"
	SiteReturn    SiteKind = "return"
	SiteVariable  SiteKind = "variable"
)

// Span is a half-open byte range [Start, End) within a source file.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// AnnotationSite references one mutable annotation location in a parsed
// unit. The site does not own the source; all spans index into the file
// bytes the site was located in.
type AnnotationSite struct {
	Kind   SiteKind
	Entity string // qualified enclosing class/function name, "" at module level
	Line   int
	Span   Span // bytes of the annotation expression itself
	// RemoveSpan additionally covers the ": T" or " -> T" attachment so the
	// whole annotation can be deleted in one splice.
	RemoveSpan Span
	// Removable is false when deleting the annotation would leave invalid
	// syntax, e.g. an annotated assignment without a value.
	Removable bool
	Text      string
	Shape     *TypeShape // nil when the annotation is outside the recognized grammar
}

// PlanAction is the terminal state of one Bernoulli trial for one site.
type PlanAction int

// Trial outcomes.
const (
	PlanSkip PlanAction = iota
	PlanReplace
	PlanRemove
)

// MutationPlan is the outcome of one trial: skip the site, replace its
// annotation with NewShape, or remove the annotation entirely. Strategy and
// Explanation identify the modifier that produced the plan.
type MutationPlan struct {
	Action      PlanAction
	NewShape    *TypeShape
	Strategy    string
	Explanation string
}

// PlannedMutation pairs a site with the plan decided for it.
type PlannedMutation struct {
	Site AnnotationSite
	Plan MutationPlan
}

// MutationRecord describes one applied mutation, in traversal order.
type MutationRecord struct {
	Strategy    string   `json:"strategy"`
	Explanation string   `json:"explanation"`
	SiteKind    SiteKind `json:"site_kind"`
	Entity      string   `json:"entity,omitempty"`
	Line        int      `json:"line"`
	Original    string   `json:"original"`
	Rewritten   string   `json:"rewritten"`
}

// FileRun captures the outcome of mutating one source unit with one
// strategy. Diff and Rewritten are persisted as sibling artifacts rather
// than inside the metadata document.
type FileRun struct {
	Source     Source           `json:"source"`
	Strategy   string           `json:"strategy"`
	Seed       int64            `json:"seed"`
	Likelihood float64          `json:"likelihood"`
	Records    []MutationRecord `json:"records"`
	Diff       string           `json:"-"`
	Rewritten  []byte           `json:"-"`
}

// SiteCounts aggregates annotation sites per kind for one file.
type SiteCounts struct {
	Parameters int
	Returns    int
	Variables  int
}

// Total returns the overall number of sites.
func (c SiteCounts) Total() int { return c.Parameters + c.Returns + c.Variables }

// RunSummary is displayed after a run completes.
type RunSummary struct {
	Path     Path
	Strategy string
	Mutated  int
	Out      Path
}

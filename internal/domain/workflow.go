// Package domain holds the mutation engine: site selection, plan
// trimming, splice rewriting and the workflow tying them to the adapters.
package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-udiff"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/mistype/internal/adapter"
	"github.com/mouse-blink/mistype/internal/domain/modifiers"
	m "github.com/mouse-blink/mistype/internal/model"
)

// StrategyInterleave labels a run where several modifiers compete for
// sites within one file.
const StrategyInterleave = "interleave"

// EstimateArgs configures a site estimation pass.
type EstimateArgs struct {
	Paths   []m.Path
	Exclude []string
}

// RunArgs configures a mutation run.
type RunArgs struct {
	EstimateArgs

	Out             m.Path
	Seed            int64
	Likelihood      float64
	Modifiers       []string
	Interleave      bool
	MaxBugs         int
	Threads         int
	ExcludeEntities []string
}

// ViewArgs configures retrieval of saved runs.
type ViewArgs struct {
	Out m.Path
}

// Workflow exposes the engine's operations to the command layer.
type Workflow interface {
	// Estimate counts annotation sites per file without mutating anything.
	Estimate(args EstimateArgs) (map[m.Path]m.SiteCounts, error)

	// Run mutates the selected files, persists artifacts under args.Out and
	// returns one summary per saved run.
	Run(args RunArgs) ([]m.RunSummary, error)

	// View loads previously saved runs.
	View(args ViewArgs) ([]m.FileRun, error)
}

type workflow struct {
	fs    adapter.SourceFSAdapter
	py    adapter.PythonFileAdapter
	store adapter.RecordStore
	table *modifiers.Table
	log   *zap.Logger
}

// NewWorkflow wires the engine together. A nil table selects the built-in
// replacement policy; a nil logger disables logging.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	py adapter.PythonFileAdapter,
	store adapter.RecordStore,
	table *modifiers.Table,
	log *zap.Logger,
) Workflow {
	if table == nil {
		table = modifiers.DefaultTable()
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &workflow{fs: fs, py: py, store: store, table: table, log: log}
}

func (w *workflow) Estimate(args EstimateArgs) (map[m.Path]m.SiteCounts, error) {
	sources, err := w.getSources(args)
	if err != nil {
		return nil, err
	}

	counts := make(map[m.Path]m.SiteCounts, len(sources))

	for _, source := range sources {
		content, err := w.fs.ReadFile(source.Origin.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source.Origin.Path, err)
		}

		sites, err := w.py.AnnotationSites(content, nil)
		if err != nil {
			w.log.Warn("skipping file", zap.String("path", string(source.Origin.Path)), zap.Error(err))

			continue
		}

		var c m.SiteCounts

		for _, site := range sites {
			switch site.Kind {
			case m.SiteParameter:
				c.Parameters++
			case m.SiteReturn:
				c.Returns++
			case m.SiteVariable:
				c.Variables++
			}
		}

		counts[source.Origin.Path] = c
	}

	return counts, nil
}

func (w *workflow) Run(args RunArgs) ([]m.RunSummary, error) {
	sources, err := w.getSources(args.EstimateArgs)
	if err != nil {
		return nil, err
	}

	mods := make([]modifiers.Modifier, 0, len(args.Modifiers))

	for _, name := range args.Modifiers {
		mod, err := modifiers.ByName(name, w.table)
		if err != nil {
			return nil, err
		}

		mods = append(mods, mod)
	}

	if len(mods) == 0 {
		return nil, errors.New("no modifiers selected")
	}

	filter, err := entityFilter(args.ExcludeEntities)
	if err != nil {
		return nil, err
	}

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	budget := newBudget(args.MaxBugs)

	var (
		mu        sync.Mutex
		summaries []m.RunSummary
	)

	var group errgroup.Group

	group.SetLimit(threads)

	for _, source := range sources {
		group.Go(func() error {
			if budget.exhausted() {
				return nil
			}

			runs, err := w.mutateSource(source, mods, filter, args, budget)
			if err != nil {
				return err
			}

			for _, run := range runs {
				if len(run.Records) == 0 {
					continue
				}

				dir, err := w.store.SaveRun(args.Out, run)
				if err != nil {
					return fmt.Errorf("save run for %s: %w", source.Origin.Path, err)
				}

				mu.Lock()
				summaries = append(summaries, m.RunSummary{
					Path:     source.Origin.Path,
					Strategy: run.Strategy,
					Mutated:  len(run.Records),
					Out:      dir,
				})
				mu.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Path != summaries[j].Path {
			return summaries[i].Path < summaries[j].Path
		}

		return summaries[i].Strategy < summaries[j].Strategy
	})

	return summaries, nil
}

func (w *workflow) View(args ViewArgs) ([]m.FileRun, error) {
	return w.store.LoadRuns(args.Out)
}

func (w *workflow) getSources(args EstimateArgs) ([]m.Source, error) {
	paths := args.Paths
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	sources, err := w.fs.Get(paths)
	if err != nil {
		return nil, err
	}

	if len(args.Exclude) == 0 {
		return sources, nil
	}

	excludes := make([]*regexp.Regexp, 0, len(args.Exclude))

	for _, pattern := range args.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	filtered := sources[:0]

	for _, source := range sources {
		skip := false

		for _, re := range excludes {
			if re.MatchString(string(source.Origin.Path)) {
				skip = true

				break
			}
		}

		if !skip {
			filtered = append(filtered, source)
		}
	}

	return filtered, nil
}

// mutateSource produces the runs for one file: one per modifier, or a
// single interleaved run when requested.
func (w *workflow) mutateSource(
	source m.Source,
	mods []modifiers.Modifier,
	filter adapter.EntityFilter,
	args RunArgs,
	budget *bugBudget,
) ([]m.FileRun, error) {
	content, err := w.fs.ReadFile(source.Origin.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source.Origin.Path, err)
	}

	sites, err := w.py.AnnotationSites(content, filter)
	if err != nil {
		w.log.Warn("skipping file", zap.String("path", string(source.Origin.Path)), zap.Error(err))

		return nil, nil
	}

	if len(sites) == 0 {
		return nil, nil
	}

	if args.Interleave && len(mods) > 1 {
		run, err := w.mutateInterleaved(source, content, sites, mods, args, budget)
		if err != nil {
			return nil, err
		}

		return []m.FileRun{run}, nil
	}

	runs := make([]m.FileRun, 0, len(mods))

	for _, mod := range mods {
		seed := DeriveSeed(args.Seed, string(source.Origin.Path), mod.Name())
		selector := NewSelector(seed, args.Likelihood, w.log)

		planned := selector.Plan(sites, mod)
		planned = budget.trim(planned)

		run, err := w.fileRun(source, content, planned, mod.Name(), args)
		if err != nil {
			if errors.Is(err, ErrLosslessnessViolation) {
				w.log.Error("abandoning file",
					zap.String("path", string(source.Origin.Path)),
					zap.Error(err))

				continue
			}

			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, nil
}

// mutateInterleaved lets every modifier keep its own stream while a
// dedicated order stream decides which modifier gets first claim on each
// site. The first non-skip plan wins.
func (w *workflow) mutateInterleaved(
	source m.Source,
	content []byte,
	sites []m.AnnotationSite,
	mods []modifiers.Modifier,
	args RunArgs,
	budget *bugBudget,
) (m.FileRun, error) {
	unit := string(source.Origin.Path)

	selectors := make([]*Selector, len(mods))
	for i, mod := range mods {
		selectors[i] = NewSelector(DeriveSeed(args.Seed, unit, mod.Name()), args.Likelihood, w.log)
	}

	order := NewSelector(DeriveSeed(args.Seed, unit, StrategyInterleave), 1, w.log)

	planned := make([]m.PlannedMutation, 0, len(sites))

	for _, site := range sites {
		chosen := m.PlannedMutation{Site: site, Plan: m.MutationPlan{Action: m.PlanSkip}}

		for _, i := range order.rng.Perm(len(mods)) {
			p := selectors[i].PlanSite(site, mods[i])
			if p.Plan.Action != m.PlanSkip {
				chosen = p

				break
			}
		}

		planned = append(planned, chosen)
	}

	planned = budget.trim(planned)

	run, err := w.fileRun(source, content, planned, StrategyInterleave, args)
	if err != nil && errors.Is(err, ErrLosslessnessViolation) {
		w.log.Error("abandoning file", zap.String("path", unit), zap.Error(err))

		return m.FileRun{Source: source, Strategy: StrategyInterleave}, nil
	}

	return run, err
}

func (w *workflow) fileRun(
	source m.Source,
	content []byte,
	planned []m.PlannedMutation,
	strategy string,
	args RunArgs,
) (m.FileRun, error) {
	rewritten, records, err := Rewrite(content, planned)
	if err != nil {
		return m.FileRun{}, err
	}

	run := m.FileRun{
		Source:     source,
		Strategy:   strategy,
		Seed:       args.Seed,
		Likelihood: args.Likelihood,
		Records:    records,
		Rewritten:  rewritten,
	}

	if len(records) > 0 {
		rel := diffLabel(source.Origin.Path)
		run.Diff = udiff.Unified("a/"+rel, "b/"+rel, string(content), string(rewritten))
	}

	return run, nil
}

func diffLabel(path m.Path) string {
	return strings.TrimPrefix(string(path), "/")
}

// entityFilter compiles exclusion patterns into the predicate the locator
// applies to qualified entity names.
func entityFilter(patterns []string) (adapter.EntityFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid entity pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return func(entity string) bool {
		for _, re := range excludes {
			if re.MatchString(entity) {
				return false
			}
		}

		return true
	}, nil
}

// bugBudget enforces a global cap on applied mutations across files and
// goroutines. Excess plans are downgraded to skips in traversal order.
type bugBudget struct {
	mu        sync.Mutex
	remaining int
	unlimited bool
}

func newBudget(maxBugs int) *bugBudget {
	return &bugBudget{remaining: maxBugs, unlimited: maxBugs <= 0}
}

func (b *bugBudget) exhausted() bool {
	if b.unlimited {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.remaining <= 0
}

func (b *bugBudget) trim(planned []m.PlannedMutation) []m.PlannedMutation {
	if b.unlimited {
		return planned
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range planned {
		if planned[i].Plan.Action == m.PlanSkip {
			continue
		}

		if b.remaining <= 0 {
			planned[i].Plan = m.MutationPlan{Action: m.PlanSkip}

			continue
		}

		b.remaining--
	}

	return planned
}

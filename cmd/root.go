// Package cmd provides the root command and CLI setup for mistype.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/mistype/internal/adapter"
	"github.com/mouse-blink/mistype/internal/config"
	"github.com/mouse-blink/mistype/internal/controller"
	"github.com/mouse-blink/mistype/internal/domain"
	m "github.com/mouse-blink/mistype/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var pyAdapter adapter.PythonFileAdapter
var recordStore adapter.RecordStore
var ui controller.UI
var logger *zap.Logger
var workflow domain.Workflow
var cfg *config.Config

var configFlag string
var outFlag string
var verboseFlag bool
var listFlag bool

var seedFlag int64
var likelihoodFlag float64
var modifierFlags []string
var interleaveFlag bool
var maxBugsFlag int
var parallelFlag int
var excludeFlags []string
var excludeEntityFlags []string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mistype [paths...]",
		Short: "Python type annotation bug synthesizer",
		Long:  rootLongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFlag {
				counts, err := workflow.Estimate(domain.EstimateArgs{
					Paths:   parsePaths(args),
					Exclude: excludeFlags,
				})

				return ui.DisplayEstimation(counts, err)
			}

			summaries, err := workflow.Run(engineArgs(args))
			if err != nil {
				return err
			}

			return ui.DisplayRunSummary(summaries)
		},
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVarP(&outFlag, "out", "o", "", "directory for mutation artifacts")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVarP(&listFlag, "list", "l", false, "list annotation sites instead of mutating")
	addEngineFlags(cmd)

	return cmd
}

// setup builds the dependency graph once per invocation. Components that a
// test pre-populated stay untouched.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	cfg = loaded
	applyConfigDefaults(cmd)

	if logger == nil {
		logger = zap.NewNop()

		if verboseFlag {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return err
			}
		}
	}

	if fsAdapter == nil {
		fsAdapter = adapter.NewLocalSourceFSAdapter()
	}

	if pyAdapter == nil {
		pyAdapter = adapter.NewTreeSitterFileAdapter()
	}

	if recordStore == nil {
		recordStore = adapter.NewRecordStore(fsAdapter)
	}

	if ui == nil {
		ui = controller.NewUI(cmd)
	}

	if workflow == nil {
		workflow = domain.NewWorkflow(fsAdapter, pyAdapter, recordStore, cfg.Table(), logger)
	}

	return nil
}

// applyConfigDefaults lets the config file provide values for flags the
// user did not set on the command line. Explicit flags always win.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()

	if !flags.Changed("seed") {
		seedFlag = cfg.Seed
	}

	if !flags.Changed("likelihood") {
		likelihoodFlag = cfg.Likelihood
	}

	if !flags.Changed("modifier") && len(cfg.Modifiers) > 0 {
		modifierFlags = cfg.Modifiers
	}

	if !flags.Changed("interleave") {
		interleaveFlag = cfg.Interleave
	}

	if !flags.Changed("max-bugs") {
		maxBugsFlag = cfg.MaxBugs
	}

	if !flags.Changed("parallel") {
		parallelFlag = cfg.Parallel
	}

	if !cmd.PersistentFlags().Changed("out") && outFlag == "" {
		outFlag = cfg.Out
	}
}

// addEngineFlags registers the mutation flags shared by the root command
// and the run subcommand.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seedFlag, "seed", 24, "base seed for reproducible runs")
	cmd.Flags().Float64Var(&likelihoodFlag, "likelihood", 0.25, "per-site mutation probability in [0, 1]")
	cmd.Flags().StringArrayVarP(&modifierFlags, "modifier", "m", []string{"change"}, "modifier to apply: change, remove or all (can be repeated)")
	cmd.Flags().BoolVar(&interleaveFlag, "interleave", false, "let modifiers compete for sites within one file")
	cmd.Flags().IntVar(&maxBugsFlag, "max-bugs", 0, "cap on applied mutations across all files, 0 means unlimited")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of files mutated concurrently")
	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringArrayVar(&excludeEntityFlags, "exclude-entity", nil, "exclude functions/classes matching regex (can be repeated)")
}

func engineArgs(args []string) domain.RunArgs {
	return domain.RunArgs{
		EstimateArgs: domain.EstimateArgs{
			Paths:   parsePaths(args),
			Exclude: excludeFlags,
		},
		Out:             m.Path(outFlag),
		Seed:            seedFlag,
		Likelihood:      likelihoodFlag,
		Modifiers:       expandModifiers(modifierFlags),
		Interleave:      interleaveFlag,
		MaxBugs:         maxBugsFlag,
		Threads:         parallelFlag,
		ExcludeEntities: excludeEntityFlags,
	}
}

// expandModifiers resolves the "all" alias and drops duplicates while
// preserving order.
func expandModifiers(names []string) []string {
	var out []string

	seen := make(map[string]struct{})

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, name := range names {
		if name == "all" {
			add("change")
			add("remove")

			continue
		}

		add(name)
	}

	return out
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

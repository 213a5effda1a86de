package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/mistype/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayEstimation prints per-file annotation site counts or the error.
func (s *SimpleUI) DisplayEstimation(counts map[m.Path]m.SiteCounts, err error) error {
	if err != nil {
		s.printf("estimation error: %v\n", err)

		return err
	}

	paths := make([]string, 0, len(counts))
	for path := range counts {
		paths = append(paths, string(path))
	}

	sort.Strings(paths)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Params", "Returns", "Vars", "Total"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var total int

	for _, path := range paths {
		c := counts[m.Path(path)]
		table.Append([]string{
			path,
			fmt.Sprintf("%d", c.Parameters),
			fmt.Sprintf("%d", c.Returns),
			fmt.Sprintf("%d", c.Variables),
			fmt.Sprintf("%d", c.Total()),
		})

		total += c.Total()
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(paths)),
		"", "", "",
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayRunSummary prints one row per saved run.
func (s *SimpleUI) DisplayRunSummary(summaries []m.RunSummary) error {
	if len(summaries) == 0 {
		s.printf("no mutations applied\n")

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Strategy", "Mutations", "Artifacts"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	var total int

	for _, summary := range summaries {
		table.Append([]string{
			string(summary.Path),
			summary.Strategy,
			fmt.Sprintf("%d", summary.Mutated),
			string(summary.Out),
		})

		total += summary.Mutated
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Runs %d", len(summaries)),
		"",
		fmt.Sprintf("%d", total),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayRuns prints saved runs with their records and diffs.
func (s *SimpleUI) DisplayRuns(runs []m.FileRun) error {
	if len(runs) == 0 {
		s.printf("no saved runs\n")

		return nil
	}

	for _, run := range runs {
		s.printf("%s [%s] seed=%d likelihood=%g\n",
			run.Source.Origin.Path, run.Strategy, run.Seed, run.Likelihood)

		for _, record := range run.Records {
			target := record.Entity
			if target == "" {
				target = "<module>"
			}

			rewritten := record.Rewritten
			if rewritten == "" {
				rewritten = "<removed>"
			}

			s.printf("  L%d %s %s: %s => %s\n",
				record.Line, target, record.SiteKind, record.Original, rewritten)
		}

		if run.Diff != "" {
			s.printf("\n%s\n", strings.TrimRight(run.Diff, "\n"))
		}

		s.printf("\n")
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// Compile-time interface compliance check.
var _ UI = (*SimpleUI)(nil)

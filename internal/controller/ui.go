// Package controller provides output adapters for displaying annotation
// mutation results.
package controller

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/mistype/internal/model"
)

// UI defines the interface for presenting engine results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayEstimation(counts map[m.Path]m.SiteCounts, err error) error
	DisplayRunSummary(summaries []m.RunSummary) error
	DisplayRuns(runs []m.FileRun) error
}

// NewUI picks the richest UI the output stream supports: the interactive
// browser on a terminal, plain tables otherwise.
func NewUI(cmd *cobra.Command) UI {
	if IsTTY() {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

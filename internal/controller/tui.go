package controller

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/mistype/internal/model"
)

// TUI implements UI with an interactive run browser. Estimation and run
// summaries stay as plain tables; only saved runs get the Bubble Tea
// treatment.
type TUI struct {
	simple *SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{simple: NewSimpleUI(cmd)}
}

// DisplayEstimation prints per-file annotation site counts or the error.
func (t *TUI) DisplayEstimation(counts map[m.Path]m.SiteCounts, err error) error {
	return t.simple.DisplayEstimation(counts, err)
}

// DisplayRunSummary prints one row per saved run.
func (t *TUI) DisplayRunSummary(summaries []m.RunSummary) error {
	return t.simple.DisplayRunSummary(summaries)
}

// DisplayRuns opens the interactive browser over saved runs.
func (t *TUI) DisplayRuns(runs []m.FileRun) error {
	if len(runs) == 0 {
		return t.simple.DisplayRuns(runs)
	}

	items := make([]list.Item, 0, len(runs))
	for _, run := range runs {
		items = append(items, newRunItem(run))
	}

	delegate := list.NewDefaultDelegate()
	runList := list.New(items, delegate, 0, 0)
	runList.Title = "Saved mutation runs"

	model := runBrowserModel{list: runList, runs: runs}

	program := tea.NewProgram(model, tea.WithOutput(t.simple.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		// Fall back to plain output when no terminal is available.
		return t.simple.DisplayRuns(runs)
	}

	return nil
}

type runItem struct {
	title       string
	description string
}

func newRunItem(run m.FileRun) runItem {
	added, deleted := diffStats(run.Diff)

	return runItem{
		title: string(run.Source.Origin.Path),
		description: fmt.Sprintf("%s | %d mutations | +%d -%d",
			run.Strategy, len(run.Records), added, deleted),
	}
}

func (i runItem) Title() string       { return i.title }
func (i runItem) Description() string { return i.description }
func (i runItem) FilterValue() string { return i.title }

// diffStats sums added and deleted line counts across the fragments of a
// unified diff. A diff that fails to parse counts as zero.
func diffStats(diff string) (added, deleted int64) {
	if diff == "" {
		return 0, 0
	}

	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	if err != nil {
		return 0, 0
	}

	for _, file := range files {
		for _, fragment := range file.TextFragments {
			added += fragment.LinesAdded
			deleted += fragment.LinesDeleted
		}
	}

	return added, deleted
}

var (
	addedLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	deletedLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle      = lipgloss.NewStyle().Bold(true)
)

type runBrowserModel struct {
	list     list.Model
	runs     []m.FileRun
	viewport viewport.Model
	showDiff bool
	width    int
	height   int
}

func (b runBrowserModel) Init() tea.Cmd {
	return nil
}

func (b runBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.list.SetSize(msg.Width, msg.Height)
		b.viewport.Width = msg.Width
		b.viewport.Height = msg.Height - 2

		return b, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if b.showDiff {
				b.showDiff = false

				return b, nil
			}

			return b, tea.Quit
		case "esc":
			if b.showDiff {
				b.showDiff = false

				return b, nil
			}
		case "enter":
			if !b.showDiff {
				index := b.list.Index()
				if index >= 0 && index < len(b.runs) {
					b.viewport = viewport.New(b.width, b.height-2)
					b.viewport.SetContent(renderDiff(b.runs[index]))
					b.showDiff = true
				}

				return b, nil
			}
		}
	}

	var cmd tea.Cmd

	if b.showDiff {
		b.viewport, cmd = b.viewport.Update(msg)
	} else {
		b.list, cmd = b.list.Update(msg)
	}

	return b, cmd
}

func (b runBrowserModel) View() string {
	if b.showDiff {
		return b.viewport.View() + "\n" + headerStyle.Render("esc back | q quit")
	}

	return b.list.View()
}

func renderDiff(run m.FileRun) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s [%s]", run.Source.Origin.Path, run.Strategy)))
	sb.WriteString("\n\n")

	for _, line := range strings.Split(strings.TrimRight(run.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			sb.WriteString(addedLineStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			sb.WriteString(deletedLineStyle.Render(line))
		default:
			sb.WriteString(line)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Compile-time interface compliance check.
var _ UI = (*TUI)(nil)

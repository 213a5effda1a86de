package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/mistype/internal/domain"
	m "github.com/mouse-blink/mistype/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved mutation runs",
		Long:  "View mutation runs saved under the artifact directory, including records and diffs.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			runs, err := workflow.View(domain.ViewArgs{Out: m.Path(outFlag)})
			if err != nil {
				return err
			}

			return ui.DisplayRuns(runs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

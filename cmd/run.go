package cmd

import (
	"github.com/spf13/cobra"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Synthesize annotation bugs",
		Long:  runLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			summaries, err := workflow.Run(engineArgs(args))
			if err != nil {
				return err
			}

			return ui.DisplayRunSummary(summaries)
		},
	}
	addEngineFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

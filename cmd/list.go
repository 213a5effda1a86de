package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/mistype/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()
var listExcludeFlags []string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List files and annotation site counts",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			counts, err := workflow.Estimate(domain.EstimateArgs{
				Paths:   parsePaths(args),
				Exclude: listExcludeFlags,
			})

			return ui.DisplayEstimation(counts, err)
		},
	}
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

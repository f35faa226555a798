package main

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gonkalabs/noface/internal/labels"
	"github.com/gonkalabs/noface/internal/render"
)

// NewLabelsCmd creates the labels command.
func NewLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List entity labels and their colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(labels.All())
			}
			noColor, _ := cmd.Flags().GetBool("no-color")
			return render.NewTerminal(cmd.OutOrStdout(), !noColor && !color.NoColor).Legend()
		},
	}
	cmd.Flags().Bool("json", false, "Print the legend as JSON")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	return cmd
}

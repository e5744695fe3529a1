package main

import (
	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/docs"
	"github.com/TM9657/flowdoc/utils"
)

// newSpecCmd creates the 'spec' subcommand that prints the embedded document
// format description.
func newSpecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spec",
		Short: "Print the flowdoc document format description",
		Run: func(cmd *cobra.Command, args []string) {
			utils.User("%s", docs.FlowdocSpec)
		},
	}
}

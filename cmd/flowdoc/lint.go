package main

import (
	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/utils"
)

// newLintCmd creates the 'lint' subcommand.
func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [file]",
		Short: "Lint a document file (schema validate + structural warnings)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := dsl.Load(args[0])
			if err != nil {
				utils.Error("Load error: %v", err)
				exit(1)
			}
			warnings := dsl.Lint(doc)
			if len(warnings) == 0 {
				utils.User("Lint OK: document is clean!")
				return
			}
			for _, warn := range warnings {
				utils.User("warning: %v", warn)
			}
			exit(2)
		},
	}
}

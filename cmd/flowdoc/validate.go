package main

import (
	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/utils"
)

// newValidateCmd creates the 'validate' subcommand.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a document file (YAML parse + schema validate)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := dsl.Parse(args[0])
			if err != nil {
				utils.Error("Parse error: %v", err)
				exit(1)
			}
			if err := dsl.Validate(doc); err != nil {
				utils.Error("Schema validation error: %v", err)
				exit(2)
			}
			utils.User("Validation OK: document is valid!")
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/model"
	"github.com/TM9657/flowdoc/utils"
)

// newTextCmd creates the 'text' subcommand.
func newTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text [file]",
		Short: "Extract the plain text of a document's code blocks and paragraphs",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := dsl.Load(args[0])
			if err != nil {
				utils.Error("Failed to load document: %v", err)
				exit(1)
			}
			utils.User("%s", model.PlainText(doc))
		},
	}
}

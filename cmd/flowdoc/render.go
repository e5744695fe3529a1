package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/render"
	"github.com/TM9657/flowdoc/templater"
	"github.com/TM9657/flowdoc/utils"
)

// newRenderCmd creates the 'render' subcommand.
func newRenderCmd() *cobra.Command {
	var outputPath string
	var page bool

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document file to HTML",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadCfg()
			doc, err := dsl.Load(args[0])
			if err != nil {
				utils.Error("Failed to load document: %v", err)
				exit(1)
			}
			renderer := render.NewHTMLRenderer(nil)
			renderer.Attrs = cfg.Render.Attrs
			out, err := renderer.Render(doc)
			if err != nil {
				utils.Error("Render failed: %v", err)
				exit(1)
			}
			if page {
				tmpl, err := templater.NewTemplater()
				if err != nil {
					utils.Error("Templater init failed: %v", err)
					exit(1)
				}
				title := cfg.Render.Title
				if title == "" {
					title = doc.Name
				}
				out, err = tmpl.RenderPage(title, out)
				if err != nil {
					utils.Error("Page render failed: %v", err)
					exit(1)
				}
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
					utils.Error("Failed to write output file: %v", err)
					exit(1)
				}
				utils.User("Rendered %s to %s", args[0], outputPath)
				return
			}
			utils.User("%s", out)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (stdout if not specified)")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap output in a full HTML page")
	return cmd
}

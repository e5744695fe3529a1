package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/blob"
	"github.com/TM9657/flowdoc/config"
	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/render"
	"github.com/TM9657/flowdoc/templater"
	"github.com/TM9657/flowdoc/utils"
)

// newExportCmd creates the 'export' subcommand: render a document to a full
// HTML page and store it in the configured blob store.
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Render a document and store the HTML page in the blob store",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadCfg()
			ctx := cmd.Context()

			doc, err := dsl.Load(args[0])
			if err != nil {
				utils.Error("Failed to load document: %v", err)
				exit(1)
			}
			renderer := render.NewHTMLRenderer(nil)
			renderer.Attrs = cfg.Render.Attrs
			body, err := renderer.Render(doc)
			if err != nil {
				utils.Error("Render failed: %v", err)
				exit(1)
			}
			tmpl, err := templater.NewTemplater()
			if err != nil {
				utils.Error("Templater init failed: %v", err)
				exit(1)
			}
			title := cfg.Render.Title
			if title == "" {
				title = doc.Name
			}
			page, err := tmpl.RenderPage(title, body)
			if err != nil {
				utils.Error("Page render failed: %v", err)
				exit(1)
			}

			store, err := blob.NewDefaultBlobStore(ctx, &blob.BlobConfig{
				Driver:    cfg.Blob.Driver,
				Directory: config.DefaultBlobDir,
				Bucket:    cfg.Blob.Bucket,
				Region:    cfg.Blob.Region,
			})
			if err != nil {
				utils.Error("Blob store init failed: %v", err)
				exit(1)
			}
			base := filepath.Base(args[0])
			name := base[:len(base)-len(filepath.Ext(base))] + ".html"
			url, err := store.Put(ctx, []byte(page), "text/html; charset=utf-8", name)
			if err != nil {
				utils.Error("Blob store write failed: %v", err)
				exit(1)
			}
			utils.User("Exported %s to %s", args[0], url)
		},
	}
}

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/convert"
	"github.com/TM9657/flowdoc/utils"
)

// newConvertCmd creates the 'convert' subcommand for format conversion.
func newConvertCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "convert <input-file>",
		Short: "Convert documents between YAML and JSON formats",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			inputPath := args[0]

			inputData, err := os.ReadFile(inputPath)
			if err != nil {
				utils.Error("Failed to read input file: %v", err)
				exit(1)
			}

			inputExt := filepath.Ext(inputPath)
			if outputPath == "" {
				switch inputExt {
				case ".yaml", ".yml":
					outputPath = changeExtension(inputPath, ".json")
				case ".json":
					outputPath = changeExtension(inputPath, ".yaml")
				default:
					utils.Error("Unsupported input format: %s", inputExt)
					exit(1)
				}
			}
			outputExt := filepath.Ext(outputPath)

			var result string
			switch {
			case (inputExt == ".yaml" || inputExt == ".yml") && outputExt == ".json":
				result, err = convert.YAMLToJSON(inputData)
			case inputExt == ".json" && (outputExt == ".yaml" || outputExt == ".yml"):
				result, err = convert.JSONToYAML(inputData)
			default:
				utils.Error("Unsupported conversion: %s to %s", inputExt, outputExt)
				exit(1)
			}
			if err != nil {
				utils.Error("Conversion failed: %v", err)
				exit(1)
			}

			if err := os.WriteFile(outputPath, []byte(result), 0644); err != nil {
				utils.Error("Failed to write output file: %v", err)
				exit(1)
			}

			utils.User("Converted %s to %s", inputPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (auto-detected if not specified)")
	return cmd
}

// changeExtension changes the file extension while preserving the base name
func changeExtension(path, newExt string) string {
	base := path[:len(path)-len(filepath.Ext(path))]
	return base + newExt
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	flowdochttp "github.com/TM9657/flowdoc/http"
	"github.com/TM9657/flowdoc/utils"
)

// newServeCmd creates the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the flowdoc document API",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadCfg()
			if host == "" {
				host = cfg.HTTP.Host
			}
			if port == 0 {
				port = cfg.HTTP.Port
			}
			addr := fmt.Sprintf("%s:%d", host, port)
			if err := flowdochttp.StartServer(addr); err != nil {
				utils.Error("Server failed: %v", err)
				exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Bind host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Bind port (overrides config)")
	return cmd
}

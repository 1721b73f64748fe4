package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediagent/config"
	srv "mediagent/internal/server"
)

func main() {
	var root = &cobra.Command{Use: "mediagent"}

	var cfgPath string
	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the agent HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if serveAddr != "" {
				cfg.General.Listen = serveAddr
			}
			return srv.Run(cfg)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config directory (default is .)")

	root.AddCommand(serve)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

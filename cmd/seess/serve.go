package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yacobolo/seess"
	"github.com/yacobolo/seess/internal/command"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve seess commands over HTTP",
	Long: `Start the command host. Registered commands are invoked with
POST /invoke/{command} and a JSON argument object, for example:

  curl -d '{"input": "body { color: red; }"}' localhost:8787/invoke/analyze_css_command`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := buildLogger()
		config := buildServerConfig()
		registry := command.NewDefaultRegistry()

		logger.Info("starting seess command host",
			"version", seess.Version,
			"addr", config.Addr,
			"commands", len(registry.List()),
		)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return command.NewServer(registry, logger, config).Serve(ctx)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "127.0.0.1:8787", "Listen address")
	f.Int64("max-body-bytes", command.DefaultMaxBodyBytes, "Maximum request body size")
}

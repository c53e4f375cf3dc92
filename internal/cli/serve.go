package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dizzikim-dev/infraflow-sub006/internal/config"
	"github.com/dizzikim-dev/infraflow-sub006/internal/server"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The server exposes the pipeline over HTTP:

  POST /v1/layout     compute a diagram from a spec
  POST /v1/unlayout   recover a spec from a diagram
  POST /v1/validate   check a spec
  GET  /healthz       liveness probe
  GET  /metrics       prometheus metrics

Configuration is read from --config, $INFRAFLOW_CONFIG, or
~/.config/infraflow/config.toml; the cache backend (file, redis, off) comes
from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	backend, err := newConfiguredCache(cmd.Context(), cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache backend %q: %w", cfg.Cache.Backend, err)
	}

	runner := pipeline.NewRunner(backend, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger, cfg)
	return srv.ListenAndServe()
}

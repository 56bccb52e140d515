package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/knotwork/internal/server"
	"github.com/matzehuels/knotwork/pkg/cache"
)

// serveKeyPrefix keeps server cache entries apart from CLI entries when both
// share a backend.
const serveKeyPrefix = "api:"

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configFile string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion API over HTTP",
		Long: `Serve the conversion API over HTTP.

Endpoints:
  POST /v1/convert     convert a BPSEQ or dot-bracket structure
  GET  /v1/resolvers   list strategies, selectors and defaults
  GET  /healthz        liveness and version

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  knotwork serve --addr :9000

  curl -s localhost:9000/v1/convert -d '{"input": "1 G 4\n2 A 0\n3 A 0\n4 C 1\n"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache, cache.NewScopedKeyer(nil, serveKeyPrefix))
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			return server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: ~/.config/knotwork/config.toml)")
	cmd.Flags().StringVar(&addr, "addr", defaultServerAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fencedraw/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		redisURL    string
		noCache     bool
		maxBodySize int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

  POST /v1/render?format=svg|png|pdf|json   TOML or JSON spec in the body
  GET  /v1/healthz
  GET  /v1/version

With --redis-url (or REDIS_URL) layouts and artifacts are cached in Redis
and shared between instances; otherwise the local file cache is used.`,
		Example: `  fencedraw serve --addr :8080
  fencedraw serve --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL == "" {
				redisURL = os.Getenv("REDIS_URL")
			}
			return c.runServe(cmd.Context(), addr, redisURL, noCache, maxBodySize)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&maxBodySize, "max-body", server.DefaultMaxBodySize, "maximum spec size in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool, maxBodySize int64) error {
	runner, err := c.newServerRunner(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := server.New(runner, c.Logger, server.WithMaxBodySize(maxBodySize))
	c.Logger.Info("listening", "addr", l.Addr().String())
	prog := newProgress(c.Logger)

	err = server.Serve(ctx, server.DefaultShutdownTimeout, srv.HTTPServer(), l)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	prog.done("Server stopped")
	return err
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/mcp"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/watch"
	"github.com/custodia-labs/wordspace/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query the
embedding model.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which adds:
  - /healthz reporting whether a model is loaded
  - /metrics in Prometheus format
  - per-server rate limiting (server.rate_limit, server.burst)

Examples:
  # Stdio mode (default)
  wordspace mcp serve

  # HTTP mode, reloading the model whenever the artifact is replaced
  wordspace mcp serve --port 8080 --watch`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio, default from server.port)")
	mcpServeCmd.Flags().Bool("watch", false, "reload the model when the artifact changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	watchModel, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !cmd.Flags().Changed("port") {
		port = settings.Server.Port
	}

	// The server starts without a model; tools report model_not_loaded until one appears.
	if err := ensureModel(cmd.Context()); err != nil {
		logger.Warn("%v", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Query:  queryService,
		Models: modelService,
	})
	if err != nil {
		return err
	}

	if watchModel {
		path, err := resolveModelPath()
		if err != nil {
			return err
		}
		w := watch.New(modelService, path, watch.DefaultDebounce)
		go func() {
			if err := w.Run(cmd.Context()); err != nil {
				logger.Warn("model watcher stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr, mcp.HTTPOptions{
			RateLimit: settings.Server.RateLimit,
			Burst:     settings.Server.Burst,
			Metrics:   metricsHandler,
		})
	}

	return server.Run(cmd.Context())
}

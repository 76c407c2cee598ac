package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ganot/tlink/internal/app"
	"github.com/ganot/tlink/internal/mcp"
	"github.com/ganot/tlink/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(rt *runtime) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the TestLink tools over MCP (stdio or http)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if mode == "" {
				mode = rt.cfg.MCP.Mode
			}
			a, cleanup, err := rt.openApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer cleanup()

			server := mcp.NewServer(mcp.Config{
				Services:      mcpServices(a),
				TransportMode: mode,
				Version:       Version,
				Logger:        rt.logger,
			})

			switch mode {
			case "stdio":
				rt.logger.Info("starting stdio transport")
				return server.Run(cmd.Context(), &sdkmcp.StdioTransport{})
			case "http":
				return rt.serveHTTP(cmd.Context(), server, a)
			default:
				return fmt.Errorf("unknown MCP mode %q (want stdio or http)", mode)
			}
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "stdio or http (defaults to mcp.mode)")
	return cmd
}

func mcpServices(a *app.App) mcp.Services {
	return mcp.Services{
		Projects: a.Projects,
		Suites:   a.Suites,
		Cases:    a.Cases,
		Plans:    a.Plans,
		Reporter: a.Reporter,
		History:  a.History,
	}
}

func (rt *runtime) serveHTTP(ctx context.Context, server *sdkmcp.Server, a *app.App) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	addr := fmt.Sprintf("%s:%d", rt.cfg.MCP.Host, rt.cfg.MCP.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(mcpHandler, a.Remote),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rt.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

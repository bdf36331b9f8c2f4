package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zamm-dev/diary-mvp/internal/mcp"
)

const mcpShutdownTimeout = 5 * time.Second

func (a *App) createMCPCommand() *cobra.Command {
	var transport string
	var address string

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start a Model Context Protocol server that lets assistants list, read and add diary entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(a.diary, a.logger)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Start(ctx, transport, address)
			}()

			select {
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("MCP server error: %w", err)
				}
			case sig := <-sigChan:
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, shutting down MCP server...\n", sig)
				cancel()
				stopCtx, stopCancel := context.WithTimeout(context.Background(), mcpShutdownTimeout)
				defer stopCancel()
				if err := server.Stop(stopCtx); err != nil {
					return fmt.Errorf("error stopping MCP server: %w", err)
				}
			}

			return nil
		},
	}

	mcpCmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type (stdio or http)")
	mcpCmd.Flags().StringVar(&address, "address", ":8080", "Address to bind HTTP server (only used with http transport)")

	return mcpCmd
}

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/logging"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/server"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/transport/sse"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/transport/stdio"
)

func newServeCmd() *cobra.Command {
	var (
		transport          string
		host               string
		port               int
		disableDestructive bool
		readOnly           bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, transport, host, port, disableDestructive, readOnly)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport to serve on: stdio, sse, or http")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Host to bind for sse/http transports")
	cmd.Flags().IntVar(&port, "port", 8000, "Port to bind for sse/http transports")
	cmd.Flags().BoolVar(&disableDestructive, "disable-destructive", false, "Block every tool annotated destructive")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Block every tool not annotated read_only")

	return cmd
}

// runServe builds the server and blocks serving the chosen transport until
// ctx is canceled by SIGINT/SIGTERM. read-only takes precedence over
// disable-destructive when both flags are set, since it is the stricter mode.
func runServe(cmd *cobra.Command, transportName, host string, port int, disableDestructive, readOnly bool) error {
	cfg := server.ConfigFromEnv()
	cfg.Transport = transportName
	cfg.Host = host
	cfg.Port = port

	switch {
	case readOnly:
		cfg.SafetyMode = safety.ModeReadOnly
	case disableDestructive:
		cfg.SafetyMode = safety.ModeDisableDestructive
	}

	log, closeLog, err := logging.New(cfg.Debug, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closeLog()

	srv, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch transportName {
	case "stdio":
		t := stdio.New(os.Stdin, os.Stdout, log)
		return serveAndTranslateSignal(ctx, func() error { return t.Serve(ctx, srv.Dispatcher) })
	case "sse", "http":
		t := sse.New(srv.Dispatcher, log)
		httpSrv := &http.Server{Addr: fmt.Sprintf("%s:%d", host, port), Handler: t.Mux()}
		go func() {
			<-ctx.Done()
			_ = httpSrv.Close()
		}()
		return serveAndTranslateSignal(ctx, func() error {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	default:
		return fmt.Errorf("unknown transport %q: want stdio, sse, or http", transportName)
	}
}

// serveAndTranslateSignal runs fn and, if ctx was canceled by a signal before
// fn returned its own error, exits with 130 per spec §6's exit-code table
// instead of surfacing a spurious "server closed" error.
func serveAndTranslateSignal(ctx context.Context, fn func() error) error {
	err := fn()
	if ctx.Err() != nil {
		os.Exit(130)
	}
	return err
}

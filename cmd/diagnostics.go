package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/logging"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/server"
)

// newDiagnosticsCmd reports whether the server's runtime dependencies are
// reachable: the kubectl/helm/kind/docker binaries on PATH and the
// kubeconfig contexts the provider can list. Exits 1 if any check fails, per spec §6's exit-code
// table, so it composes cleanly as a container readiness probe.
func newDiagnosticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics",
		Short: "Check kubectl/helm/kind/docker availability and kubeconfig contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnostics(cmd)
		},
	}
}

func runDiagnostics(cmd *cobra.Command) error {
	cfg := server.ConfigFromEnv()
	log, closeLog, err := logging.New(cfg.Debug, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closeLog()

	out := cmd.OutOrStdout()
	run := runner.New(cfg.Provider.QPS, cfg.Provider.Burst)

	ok := true
	for _, binary := range []runner.Binary{runner.Kubectl, runner.Helm, runner.Kind, runner.Docker} {
		available := run.Available(binary)
		status := "ok"
		if !available {
			status = "missing"
			ok = false
		}
		version := ""
		if available {
			version = run.Version(context.Background(), binary)
		}
		fmt.Fprintf(out, "%-10s %-8s %s\n", binary, status, version)
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		fmt.Fprintf(out, "provider       error    %v\n", err)
		ok = false
	} else {
		defer srv.Close()
		contexts, err := srv.Provider.ListContexts()
		if err != nil {
			fmt.Fprintf(out, "kube-context   error    %v\n", err)
			ok = false
		} else {
			fmt.Fprintf(out, "kube-context   ok       %d context(s) available\n", len(contexts))
		}
		fmt.Fprintf(out, "tool-registry  ok       %d tool(s) registered\n", len(srv.Registry.List()))
	}

	if !ok {
		return fmt.Errorf("one or more diagnostics checks failed")
	}
	return nil
}

// Package cmd implements the mcp-kubernetes CLI surface (spec §6): serve,
// version, and diagnostics, built with spf13/cobra following the teacher's
// root-command layout (cmd/root.go).
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command. Running the binary with no subcommand starts
// the server, equivalent to "mcp-kubernetes serve".
var rootCmd = &cobra.Command{
	Use:   "mcp-kubernetes",
	Short: "MCP server for Kubernetes operations",
	Long: `mcp-kubernetes is a Model Context Protocol (MCP) server exposing Kubernetes
cluster operations, kubectl/helm/kind subprocess tooling, and diagnostic
workflows as callable tools over JSON-RPC 2.0.

When run without subcommands, it starts the MCP server (equivalent to
'mcp-kubernetes serve').`,
	SilenceUsage: true,
}

// SetVersion injects the build-time version into the root command, shown by
// --version and the version subcommand.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the CLI entry point, called from main.main. Exit codes follow
// spec §6: 0 normal, 1 runtime error; SIGINT (130) is handled by the serve
// command's own signal plumbing, not here.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-kubernetes version %s\n" .Version}}`)

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newDiagnosticsCmd())
}

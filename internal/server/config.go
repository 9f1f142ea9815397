// Package server wires the safety policy, tool registry, prompt catalog, and
// provider into a single Dispatcher and exposes the process-level Config
// (spec §6 environment variables and CLI surface). Config is a plain struct
// filled by NewDefaultConfig and ConfigFromEnv; there are no option functions.
package server

import (
	"os"
	"strconv"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/provider"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
)

// Config is the full set of process-level options, spanning spec §6's CLI
// surface and environment variables.
type Config struct {
	ServerName    string
	ServerVersion string

	Transport string // stdio | sse | http
	Host      string
	Port      int

	SafetyMode safety.Mode

	Debug   bool
	LogFile string

	Provider provider.Config
}

// NewDefaultConfig returns spec-compliant defaults (§6: host 0.0.0.0, port
// 8000, normal safety mode).
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:    "kubectl-mcp-server",
		ServerVersion: Version,
		Transport:     "stdio",
		Host:          "0.0.0.0",
		Port:          8000,
		SafetyMode:    safety.ModeNormal,
		Provider:      provider.DefaultConfig(),
	}
}

// Clone returns a copy of c (provider.Config is a value type, so a shallow
// copy suffices).
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigFromEnv overlays spec §6's environment variables onto defaults.
func ConfigFromEnv() *Config {
	cfg := NewDefaultConfig()
	cfg.Provider = provider.ConfigFromEnv(os.Getenv)

	if v := os.Getenv("MCP_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		cfg.Debug = err == nil && b
	}
	if v := os.Getenv("MCP_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Version is the server's reported version (spec §3 ServerInfo.version),
// returned by mcp.initialize. The `version` CLI command prints the build-time
// version set in main instead.
const Version = "0.1.0"

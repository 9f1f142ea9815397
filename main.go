package main

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/cmd"
)

// version is overridable at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}

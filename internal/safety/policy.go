// Package safety implements the process-wide authorization gate that blocks
// write and/or destructive tool invocations independent of tool implementation.
package safety

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is the process-wide safety mode.
type Mode string

const (
	// ModeNormal allows every registered tool to run.
	ModeNormal Mode = "normal"
	// ModeReadOnly blocks every tool whose annotations.read_only is false.
	ModeReadOnly Mode = "read_only"
	// ModeDisableDestructive blocks every tool whose annotations.destructive is true.
	ModeDisableDestructive Mode = "disable_destructive"
)

// Annotations mirrors the subset of ToolDescriptor.annotations the gate needs.
// Kept separate from the registry package so safety has no import of registry,
// matching the teacher's habit of small, independently testable packages
// (internal/tools/safety.go takes only a *server.ServerContext).
type Annotations struct {
	ReadOnly    bool
	Destructive bool
}

// Policy is the process-wide safety gate. Zero value is not usable; use New.
type Policy struct {
	mode atomic.Value // Mode

	mu       sync.RWMutex
	lookup   func(name string) (Annotations, bool)
	blockedC []string // not written or read; ModeInfoFor computes blocked_operations
}

// New creates a Policy in the given starting mode. lookup resolves a tool name
// to its annotations; it is normally registry.Registry.Annotations.
func New(mode Mode, lookup func(name string) (Annotations, bool)) *Policy {
	p := &Policy{lookup: lookup}
	p.mode.Store(mode)
	return p
}

// Mode returns the current safety mode.
func (p *Policy) Mode() Mode {
	return p.mode.Load().(Mode)
}

// SetMode changes the process-wide mode. Intended to be called only during
// startup/admin operations, never from a request-handling goroutine.
func (p *Policy) SetMode(mode Mode) {
	p.mode.Store(mode)
}

// IsBlocked reports whether tool name is blocked under the current mode.
// A tool with no registered annotations is never blocked by name alone;
// callers are expected to have already resolved the tool via the registry.
func (p *Policy) IsBlocked(name string) bool {
	ann, ok := p.lookup(name)
	if !ok {
		return false
	}
	return p.blockedByMode(p.Mode(), ann)
}

func (p *Policy) blockedByMode(mode Mode, ann Annotations) bool {
	switch mode {
	case ModeReadOnly:
		return !ann.ReadOnly
	case ModeDisableDestructive:
		return ann.Destructive
	case ModeNormal:
		return false
	default:
		return false
	}
}

// BlockReason returns the human-readable reason a blocked call should carry
// in ToolResult.error, e.g. `Blocked: read_only mode forbids non-read-only operation "delete_resource"`.
func (p *Policy) BlockReason(name string) string {
	mode := p.Mode()
	switch mode {
	case ModeReadOnly:
		return fmt.Sprintf("Blocked: %s mode forbids non-read-only operation %q", mode, name)
	case ModeDisableDestructive:
		return fmt.Sprintf("Blocked: %s mode forbids destructive operation %q", mode, name)
	default:
		return fmt.Sprintf("Blocked: %s", name)
	}
}

// ModeInfo is the response shape for an admin/status query over the policy.
type ModeInfo struct {
	Mode               string   `json:"mode"`
	Description        string   `json:"description"`
	BlockedOperations  []string `json:"blocked_operations"`
}

var titleCaser = cases.Title(language.English)

// Describe returns a human-readable description of the current mode.
func (p *Policy) Describe() string {
	switch p.Mode() {
	case ModeReadOnly:
		return titleCaser.String("read-only mode: only read_only tools may be invoked")
	case ModeDisableDestructive:
		return titleCaser.String("disable-destructive mode: destructive tools are blocked")
	default:
		return titleCaser.String("normal mode: all registered tools are permitted")
	}
}

// ModeInfoFor builds a ModeInfo by walking every name in allNames through the
// current mode's block decision. Called with the registry's full tool list.
func (p *Policy) ModeInfoFor(allNames []string) ModeInfo {
	info := ModeInfo{
		Mode:        string(p.Mode()),
		Description: p.Describe(),
	}
	for _, name := range allNames {
		if p.IsBlocked(name) {
			info.BlockedOperations = append(info.BlockedOperations, name)
		}
	}
	return info
}

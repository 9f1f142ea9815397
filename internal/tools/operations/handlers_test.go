package operations

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func newTestSetup(script string, mode safety.Mode) (*registry.Registry, *safety.Policy) {
	r := runner.New(0, 0)
	r.SetExecCommandContextForTest(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	})
	r.SetAvailableForTest(runner.Kubectl, true)
	deps := common.Deps{Runner: r, Defaults: common.NewDefaults("")}

	reg := registry.New()
	policy := safety.New(mode, func(name string) (safety.Annotations, bool) {
		ro, destructive, ok := reg.Annotations(name)
		return safety.Annotations{ReadOnly: ro, Destructive: destructive}, ok
	})
	Register(reg, deps, policy)
	return reg, policy
}

func TestTaintNodeIsAlwaysDestructive(t *testing.T) {
	reg, _ := newTestSetup("echo -n ok", safety.ModeNormal)
	ro, destructive, ok := reg.Annotations("taint_node")
	require.True(t, ok)
	assert.False(t, ro)
	assert.True(t, destructive)
}

func TestNaturalLanguageQueryRejectsEmpty(t *testing.T) {
	reg, policy := newTestSetup("echo -n ok", safety.ModeNormal)
	desc, ok := reg.Lookup("natural_language_query")
	require.True(t, ok)
	_ = policy

	res, err := desc.Handler(context.Background(), registry.Input{"query": ""})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, registry.ErrorKindInvalid, res.ErrorKind)
}

func TestNaturalLanguageQueryResolvesAndInvokesTool(t *testing.T) {
	reg, policy := newTestSetup("echo -n '{\"items\":[]}'", safety.ModeNormal)
	_ = policy
	desc, ok := reg.Lookup("natural_language_query")
	require.True(t, ok)

	res, err := desc.Handler(context.Background(), registry.Input{"query": "describe resource"})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestNaturalLanguageQueryHonorsSafetyPolicy(t *testing.T) {
	reg, _ := newTestSetup("echo -n ok", safety.ModeReadOnly)
	desc, ok := reg.Lookup("natural_language_query")
	require.True(t, ok)

	res, err := desc.Handler(context.Background(), registry.Input{"query": "apply manifest"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, registry.ErrorKindPolicy, res.ErrorKind)
}

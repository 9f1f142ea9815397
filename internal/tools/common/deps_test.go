package common

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
)

func fakeRunner(script string, binary runner.Binary) *runner.Runner {
	r := runner.New(0, 0)
	r.SetExecCommandContextForTest(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	})
	r.SetAvailableForTest(binary, true)
	return r
}

func TestNamespaceResolutionPrecedence(t *testing.T) {
	defaults := NewDefaults("")
	deps := Deps{DefaultNamespace: "system-default", Defaults: defaults}

	assert.Equal(t, "default", Deps{}.Namespace(registry.Input{}))
	assert.Equal(t, "system-default", deps.Namespace(registry.Input{}))

	defaults.SetNamespace("from-switch-context")
	assert.Equal(t, "from-switch-context", deps.Namespace(registry.Input{}))

	assert.Equal(t, "explicit", deps.Namespace(registry.Input{"namespace": "explicit"}))
}

func TestKubeContextResolutionPrecedence(t *testing.T) {
	defaults := NewDefaults("")
	deps := Deps{Defaults: defaults}

	assert.Equal(t, "", deps.KubeContext(registry.Input{}))

	defaults.SetContext("staging")
	assert.Equal(t, "staging", deps.KubeContext(registry.Input{}))

	assert.Equal(t, "explicit-ctx", deps.KubeContext(registry.Input{"kubeContext": "explicit-ctx"}))
}

func TestRunKubectlParsesJSONOnSuccess(t *testing.T) {
	r := fakeRunner(`echo -n '{"items":[]}'`, runner.Kubectl)
	deps := Deps{Runner: r}
	res := deps.RunKubectl(context.Background(), []string{"get", "pods", "-o", "json"}, time.Second, true)
	require.True(t, res.Success)
	assert.Equal(t, map[string]interface{}{"items": []interface{}{}}, res.Result)
}

func TestRunKubectlFallsBackToRawStringOnInvalidJSON(t *testing.T) {
	r := fakeRunner(`echo -n 'not json'`, runner.Kubectl)
	deps := Deps{Runner: r}
	res := deps.RunKubectl(context.Background(), []string{"describe", "pod", "x"}, time.Second, true)
	require.True(t, res.Success)
	assert.Equal(t, "not json", res.Result)
}

func TestRunKubectlClassifiesUnavailableBinary(t *testing.T) {
	r := runner.New(0, 0)
	deps := Deps{Runner: r}
	res := deps.RunKubectl(context.Background(), []string{"get", "pods"}, time.Second, false)
	require.False(t, res.Success)
	assert.Equal(t, registry.ErrorKindUnavailable, res.ErrorKind)
}

func TestWithNamespaceArgs(t *testing.T) {
	assert.Equal(t, []string{"get", "pods"}, WithNamespaceArgs([]string{"get", "pods"}, ""))
	assert.Equal(t, []string{"get", "pods", "-n", "kube-system"}, WithNamespaceArgs([]string{"get", "pods"}, "kube-system"))
}

func TestWithContextArgs(t *testing.T) {
	assert.Equal(t, []string{"get", "pods"}, WithContextArgs([]string{"get", "pods"}, ""))
	assert.Equal(t, []string{"get", "pods", "--context", "staging"}, WithContextArgs([]string{"get", "pods"}, "staging"))
}

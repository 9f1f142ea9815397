package runner

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommandContext builds an exec.Cmd that runs a short shell script
// instead of the real binary, so tests never depend on kubectl/helm/kind
// being installed.
func fakeCommandContext(script string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	}
}

func newTestRunner(script string) *Runner {
	r := New(0, 0)
	r.execCommandContext = fakeCommandContext(script)
	r.available[Kubectl] = true
	return r
}

func TestRunSuccess(t *testing.T) {
	r := newTestRunner(`echo -n '{"ok":true}'`)
	res := r.Run(context.Background(), Kubectl, []string{"get", "pods"}, time.Second, true)
	require.True(t, res.Success)
	assert.Equal(t, `{"ok":true}`, res.Output)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunNonZeroExit(t *testing.T) {
	r := newTestRunner(`echo -n 'boom' 1>&2; exit 2`)
	res := r.Run(context.Background(), Kubectl, []string{"get", "pods"}, time.Second, true)
	require.False(t, res.Success)
	assert.Equal(t, "boom", res.Error)
	assert.Equal(t, 2, res.ExitCode)
}

func TestRunTimeout(t *testing.T) {
	r := newTestRunner(`sleep 2`)
	res := r.Run(context.Background(), Kubectl, []string{"get", "pods"}, 10*time.Millisecond, true)
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "timed out")
}

func TestRunBinaryNotAvailable(t *testing.T) {
	r := New(0, 0)
	r.execCommandContext = fakeCommandContext(`echo -n ok`)
	res := r.Run(context.Background(), Binary("totally-not-a-real-binary-xyz"), nil, time.Second, true)
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "command not found on PATH")
}

func TestRunWithStdinPipesInput(t *testing.T) {
	r := newTestRunner(`cat`)
	res := r.RunWithStdin(context.Background(), Kubectl, []string{"apply", "-f", "-"}, time.Second, "hello-manifest")
	require.True(t, res.Success)
	assert.Equal(t, "hello-manifest", res.Output)
}

func TestCommandLineFormatsArgv(t *testing.T) {
	assert.Equal(t, "kubectl get pods -n default", CommandLine(Kubectl, []string{"get", "pods", "-n", "default"}))
}

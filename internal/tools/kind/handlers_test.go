package kind

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func newTestHandlers(script string) *handlers {
	r := runner.New(0, 0)
	r.SetExecCommandContextForTest(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	})
	r.SetAvailableForTest(runner.Kind, true)
	r.SetAvailableForTest(runner.Docker, true)
	return &handlers{deps: common.Deps{Runner: r, Defaults: common.NewDefaults("")}}
}

func TestSplitLinesTrimsAndDropsBlank(t *testing.T) {
	assert.Equal(t, []string{"kind", "other"}, splitLines("kind\n  other  \n\n"))
	assert.Nil(t, splitLines(""))
	assert.Nil(t, splitLines(42))
}

func TestDetectReportsInstalledOnSuccess(t *testing.T) {
	h := newTestHandlers("echo -n 'kind v0.23.0'")
	res, err := h.detect(context.Background(), registry.Input{})
	require.NoError(t, err)
	require.True(t, res.Success)
	out := res.Result.(map[string]interface{})
	assert.Equal(t, true, out["installed"])
}

func TestDetectReportsNotInstalledOnFailure(t *testing.T) {
	h := newTestHandlers("exit 1")
	res, err := h.detect(context.Background(), registry.Input{})
	require.NoError(t, err)
	require.True(t, res.Success)
	out := res.Result.(map[string]interface{})
	assert.Equal(t, false, out["installed"])
	assert.Contains(t, out, "installInstructions")
}

func TestListClustersParsesOneClusterPerLine(t *testing.T) {
	h := newTestHandlers("echo -n 'kind\nstaging\n'")
	res, err := h.listClusters(context.Background(), registry.Input{})
	require.NoError(t, err)
	require.True(t, res.Success)
	out := res.Result.(map[string]interface{})
	assert.Equal(t, 2, out["total"])
	assert.Equal(t, []string{"kind", "staging"}, out["clusters"])
}

func TestClusterInfoFailsWhenClusterMissing(t *testing.T) {
	h := newTestHandlers("echo -n 'other'")
	res, err := h.clusterInfo(context.Background(), registry.Input{"name": "kind"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, registry.ErrorKindInvalid, res.ErrorKind)
}

func TestLoadImageRequiresImages(t *testing.T) {
	h := newTestHandlers("echo -n ok")
	res, err := h.loadImage(context.Background(), registry.Input{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, registry.ErrorKindInvalid, res.ErrorKind)
}

func TestLoadImageArchiveRequiresArchive(t *testing.T) {
	h := newTestHandlers("echo -n ok")
	res, err := h.loadImageArchive(context.Background(), registry.Input{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, registry.ErrorKindInvalid, res.ErrorKind)
}

func TestNodeLabelsCollectsPerNode(t *testing.T) {
	h := newTestHandlers("echo -n 'kind-control-plane'")
	res, err := h.nodeLabels(context.Background(), registry.Input{})
	require.NoError(t, err)
	require.True(t, res.Success)
	out := res.Result.(map[string]interface{})
	labels := out["nodeLabels"].(map[string]interface{})
	assert.Contains(t, labels, "kind-control-plane")
}

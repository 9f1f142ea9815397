package cost

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

const podListFixture = `{
  "items": [
    {
      "metadata": {"name": "api-1"},
      "spec": {"containers": [{"resources": {"requests": {"cpu": "500m", "memory": "256Mi"}}}]}
    },
    {
      "metadata": {"name": "api-2"},
      "spec": {"containers": [{"resources": {"requests": {"cpu": "250m", "memory": "128Mi"}}}]}
    }
  ]
}`

func newTestHandlers(script string) *handlers {
	r := runner.New(0, 0)
	r.SetExecCommandContextForTest(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	})
	r.SetAvailableForTest(runner.Kubectl, true)
	return &handlers{deps: common.Deps{Runner: r, Defaults: common.NewDefaults("")}}
}

func TestListPodsWithRequestsParsesQuantities(t *testing.T) {
	h := newTestHandlers("echo -n '" + podListFixture + "'")
	pods, failure := h.listPodsWithRequests(context.Background(), registry.Input{})
	require.Nil(t, failure)
	require.Len(t, pods, 2)
	assert.Equal(t, "api-1", pods[0].name)
	assert.Equal(t, int64(500), pods[0].cpuMillis)
	assert.Equal(t, int64(250), pods[1].cpuMillis)
}

func TestNestedWalksMapPath(t *testing.T) {
	m := map[string]interface{}{"metadata": map[string]interface{}{"name": "demo"}}
	assert.Equal(t, "demo", nested(m, "metadata", "name"))
	assert.Nil(t, nested(m, "metadata", "missing", "deeper"))
	assert.Nil(t, nested(m, "spec", "replicas"))
}

func TestRecommendResourceRequestsAddsHeadroom(t *testing.T) {
	h := newTestHandlers("echo -n '" + podListFixture + "'")
	res, err := h.recommendResourceRequests(context.Background(), registry.Input{})
	require.NoError(t, err)
	require.True(t, res.Success)

	out := res.Result.(map[string]interface{})
	recs := out["recommendations"].([]map[string]interface{})
	require.Len(t, recs, 2)
	assert.Equal(t, int64(600), recs[0]["recommendedCPUMillis"])
}

func TestAnalyzeCostComputesShares(t *testing.T) {
	h := newTestHandlers("echo -n '" + podListFixture + "'")
	res, err := h.analyzeCost(context.Background(), registry.Input{})
	require.NoError(t, err)
	require.True(t, res.Success)

	out := res.Result.(map[string]interface{})
	assert.Equal(t, int64(750), out["totalCPUMillis"])
	shares := out["shares"].([]map[string]interface{})
	require.Len(t, shares, 2)
	assert.InDelta(t, 2.0/3.0, shares[0]["cpuShare"].(float64), 0.0001)
}

func TestListPodsWithRequestsPropagatesFailure(t *testing.T) {
	h := newTestHandlers("echo -n 'boom' 1>&2; exit 1")
	pods, failure := h.listPodsWithRequests(context.Background(), registry.Input{})
	assert.Nil(t, pods)
	require.NotNil(t, failure)
	assert.False(t, failure.Success)
}

func TestOptimizeResourceRequestsBuildsStrategicPatch(t *testing.T) {
	h := newTestHandlers("cat >/dev/null; echo -n ok")
	res, err := h.optimizeResourceRequests(context.Background(), registry.Input{
		"deployment": "api",
		"cpu":        "1",
		"memory":     "512Mi",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

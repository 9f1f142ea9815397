package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureLookup(byName map[string]Annotations) func(string) (Annotations, bool) {
	return func(name string) (Annotations, bool) {
		ann, ok := byName[name]
		return ann, ok
	}
}

func TestIsBlockedNormalModeAllowsEverything(t *testing.T) {
	p := New(ModeNormal, fixtureLookup(map[string]Annotations{
		"delete_resource": {Destructive: true},
		"get_pods":        {ReadOnly: true},
	}))

	assert.False(t, p.IsBlocked("delete_resource"))
	assert.False(t, p.IsBlocked("get_pods"))
}

func TestIsBlockedReadOnlyMode(t *testing.T) {
	p := New(ModeReadOnly, fixtureLookup(map[string]Annotations{
		"delete_resource": {Destructive: true},
		"get_pods":        {ReadOnly: true},
		"label_resource":  {},
	}))

	assert.True(t, p.IsBlocked("delete_resource"))
	assert.False(t, p.IsBlocked("get_pods"))
	assert.True(t, p.IsBlocked("label_resource"))
}

func TestIsBlockedDisableDestructiveMode(t *testing.T) {
	p := New(ModeDisableDestructive, fixtureLookup(map[string]Annotations{
		"delete_resource": {Destructive: true},
		"get_pods":        {ReadOnly: true},
		"label_resource":  {},
	}))

	assert.True(t, p.IsBlocked("delete_resource"))
	assert.False(t, p.IsBlocked("get_pods"))
	assert.False(t, p.IsBlocked("label_resource"))
}

func TestIsBlockedUnknownToolNeverBlocked(t *testing.T) {
	p := New(ModeReadOnly, fixtureLookup(map[string]Annotations{}))
	assert.False(t, p.IsBlocked("nonexistent_tool"))
}

func TestSetModeChangesSubsequentDecisions(t *testing.T) {
	p := New(ModeNormal, fixtureLookup(map[string]Annotations{
		"delete_resource": {Destructive: true},
	}))
	require.False(t, p.IsBlocked("delete_resource"))

	p.SetMode(ModeDisableDestructive)
	assert.True(t, p.IsBlocked("delete_resource"))
}

func TestModeInfoForListsBlockedOperations(t *testing.T) {
	p := New(ModeReadOnly, fixtureLookup(map[string]Annotations{
		"delete_resource": {Destructive: true},
		"get_pods":        {ReadOnly: true},
	}))

	info := p.ModeInfoFor([]string{"delete_resource", "get_pods"})
	assert.Equal(t, string(ModeReadOnly), info.Mode)
	assert.Equal(t, []string{"delete_resource"}, info.BlockedOperations)
}

func TestBlockReasonMentionsMode(t *testing.T) {
	p := New(ModeReadOnly, fixtureLookup(nil))
	reason := p.BlockReason("delete_resource")
	assert.Contains(t, reason, "read_only")
	assert.Contains(t, reason, "delete_resource")
}

package providers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory(filepath.Join(t.TempDir(), "data", "toolhub.db"))
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestMemory_StoreRecallForget(t *testing.T) {
	m := newTestMemory(t)
	exec, cat := populate(t, m)
	require.Equal(t, catalog.TierFull, cat.Tier)
	ctx := context.Background()

	res := exec.ExecuteOne(ctx, "memory_store", map[string]interface{}{
		"content": "Last shipment went to Pune via NH48",
		"tags":    []interface{}{"shipment"},
	})
	require.True(t, res.Success, res.Error)
	stored := res.Data.(Fact)
	assert.NotEmpty(t, stored.ID)

	res = exec.ExecuteOne(ctx, "memory_store", map[string]interface{}{"content": "Driver prefers night routes"})
	require.True(t, res.Success, res.Error)

	res = exec.ExecuteOne(ctx, "memory_recall", map[string]interface{}{"query": "pune"})
	require.True(t, res.Success, res.Error)
	recalled := res.Data.(map[string]interface{})
	assert.Equal(t, 1, recalled["count"])
	facts := recalled["facts"].([]Fact)
	assert.Equal(t, stored.ID, facts[0].ID)
	assert.Equal(t, []string{"shipment"}, facts[0].Tags)

	res = exec.ExecuteOne(ctx, "memory_recall", map[string]interface{}{"query": "100%"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 0, res.Data.(map[string]interface{})["count"])

	res = exec.ExecuteOne(ctx, "memory_forget", map[string]interface{}{"id": stored.ID})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, true, res.Data.(map[string]interface{})["deleted"])

	res = exec.ExecuteOne(ctx, "memory_recall", map[string]interface{}{"query": "pune"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 0, res.Data.(map[string]interface{})["count"])
}

func TestMemory_SetupFailureDemotesTier(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	broken := NewMemory(filepath.Join(blocker, "toolhub.db"))
	_, cat := populate(t, NewUtilities(), broken)

	assert.Equal(t, catalog.TierDefault, cat.Tier)
	assert.Len(t, cat.Tools, 5)
}

func TestMemory_ClosedDatabaseIsUnconfigured(t *testing.T) {
	m := newTestMemory(t)
	exec, _ := populate(t, m)
	require.NoError(t, m.Close())

	res := exec.ExecuteOne(context.Background(), "memory_recall", map[string]interface{}{"query": "x"})
	assert.False(t, res.Success)
	assert.Equal(t, true, res.Metadata[toolexecutor.MetaUnconfigured])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}

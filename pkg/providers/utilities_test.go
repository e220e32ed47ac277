package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// populate loads providers through the catalog the way the app does
func populate(t *testing.T, providers ...catalog.Provider) (*toolexecutor.Executor, catalog.Catalog) {
	t.Helper()
	reg := toolexecutor.NewRegistry()
	cat := catalog.NewLoader(providers).Populate(context.Background(), reg)
	return toolexecutor.NewExecutor(reg), cat
}

func TestUtilities_Catalog(t *testing.T) {
	exec, cat := populate(t, NewUtilities())

	assert.Equal(t, catalog.TierFull, cat.Tier)
	assert.Len(t, cat.Tools, 5)

	reg := exec.Registry()
	for _, name := range []string{"echo", "time_now", "uuid_generate", "short_id_generate", "text_hash"} {
		def, ok := reg.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "utilities", def.Category, name)
	}

	def, _ := reg.Get("text_hash")
	assert.Equal(t, []string{"text"}, def.RequiredParameters())
}

func TestUtilities_Echo(t *testing.T) {
	exec, _ := populate(t, NewUtilities())

	res := exec.ExecuteOne(context.Background(), "echo", map[string]interface{}{"message": "namaste"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, map[string]interface{}{"message": "namaste"}, res.Data)

	res = exec.ExecuteOne(context.Background(), "echo", map[string]interface{}{})
	assert.False(t, res.Success)
}

func TestUtilities_TimeNow(t *testing.T) {
	u := NewUtilities()
	u.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	out, err := u.timeNow(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, "2026-03-01T05:30:00+05:30", data["time"])

	_, err = u.timeNow(context.Background(), map[string]interface{}{"timezone": "Mars/Olympus"})
	assert.Error(t, err)
}

func TestUtilities_IDs(t *testing.T) {
	exec, _ := populate(t, NewUtilities())

	res := exec.ExecuteOne(context.Background(), "uuid_generate", map[string]interface{}{"count": 3})
	require.True(t, res.Success, res.Error)
	ids := res.Data.(map[string]interface{})["uuids"].([]string)
	assert.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])

	res = exec.ExecuteOne(context.Background(), "uuid_generate", map[string]interface{}{"count": 0})
	assert.False(t, res.Success)

	res = exec.ExecuteOne(context.Background(), "short_id_generate", map[string]interface{}{"size": 10})
	require.True(t, res.Success, res.Error)
	assert.Len(t, res.Data.(map[string]interface{})["id"], 10)
}

func TestUtilities_TextHash(t *testing.T) {
	u := NewUtilities()

	tests := []struct {
		algorithm string
		want      string
	}{
		{"", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"sha1", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"md5", "5d41402abc4b2a76b9719d911017c592"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			out, err := u.textHash(context.Background(), map[string]interface{}{"text": "hello", "algorithm": tt.algorithm})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.(map[string]interface{})["hash"])
		})
	}

	_, err := u.textHash(context.Background(), map[string]interface{}{"text": "hello", "algorithm": "crc"})
	assert.Error(t, err)
}

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankr/toolhub/internal/config"
	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/providers"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.Catalog.DatabasePath = filepath.Join(dir, "toolhub.db")
	cfg.Skills.Dir = filepath.Join(dir, "skills")
	return cfg
}

func TestNewLoadsFullCatalog(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, catalog.TierFull, a.Catalog.Tier)
	assert.Equal(t, 10, a.Registry.Count())
	assert.True(t, a.Registry.Has("memory_store"))
	assert.True(t, a.Registry.Has("gst_verify"))

	result := a.Executor.ExecuteOne(context.Background(), "echo", map[string]interface{}{"message": "hi"})
	assert.True(t, result.Success)
}

func TestNewRespectsDisabledProviders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.DisabledProviders = []string{"memory", "compliance"}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 5, a.Registry.Count())
	assert.False(t, a.Registry.Has("memory_store"))
}

func TestNewWithProviders(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), WithProviders(providers.NewUtilities()))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, catalog.TierFull, a.Catalog.Tier)
	assert.Equal(t, 5, a.Registry.Count())
}

func TestNewFallsBackToStaticCatalog(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), WithProviders([]catalog.Provider{}...))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, catalog.TierStatic, a.Catalog.Tier)
	assert.Equal(t, 35, a.Registry.Count())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.Skills.MaxTokens = 0
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewWithTablesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Skills.TablesFile = filepath.Join(cfg.DataDir, "tables.yaml")
	require.NoError(t, os.WriteFile(cfg.Skills.TablesFile, []byte("default:\n  - only-skill\n"), 0o644))

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"only-skill"}, a.Selector.Select("", "", nil))

	cfg = testConfig(t)
	cfg.Skills.TablesFile = filepath.Join(cfg.DataDir, "missing.yaml")
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestSelectAndLoad(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.Skills.Dir, "memory", "ankr-eon-memory.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# Memory\n\nStore and recall facts.\n"), 0o644))

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	loaded := a.SelectAndLoad("", "please remember this", nil, 0)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ankr-eon-memory", loaded[0].Name)
	assert.False(t, loaded[0].Compressed)

	assert.Empty(t, a.SelectAndLoad("", "", []string{"ankr-eon-memory"}, 1))
}

func TestClose(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}

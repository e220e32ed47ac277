package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

func TestCompliance_Unconfigured(t *testing.T) {
	exec, _ := populate(t, NewCompliance(""))

	res := exec.ExecuteOne(context.Background(), "gst_verify", map[string]interface{}{"gstin": "27AAPFU0939F1ZV"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "credentials.gst_api_key")
	assert.Equal(t, true, res.Metadata[toolexecutor.MetaUnconfigured])
}

func TestCompliance_Configured(t *testing.T) {
	exec, _ := populate(t, NewCompliance("test-key"))
	ctx := context.Background()

	res := exec.ExecuteOne(ctx, "gst_verify", map[string]interface{}{"gstin": "27aapfu0939f1zv"})
	require.True(t, res.Success, res.Error)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, "27", data["state_code"])
	assert.Equal(t, "AAPFU0939F", data["pan"])

	res = exec.ExecuteOne(ctx, "gst_verify", map[string]interface{}{"gstin": "not-a-gstin"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid GSTIN")

	res = exec.ExecuteOne(ctx, "einvoice_generate", map[string]interface{}{
		"gstin":   "27AAPFU0939F1ZV",
		"invoice": map[string]interface{}{"number": "INV-1"},
	})
	require.True(t, res.Success, res.Error)
}

func TestCompliance_SchemaValidation(t *testing.T) {
	exec, _ := populate(t, NewCompliance("test-key"))

	res := exec.ExecuteOne(context.Background(), "einvoice_generate", map[string]interface{}{"gstin": "27AAPFU0939F1ZV"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "parameter validation failed")
}

func TestDefault(t *testing.T) {
	set := Default(Options{DatabasePath: ":memory:"})
	defer set.Close()

	var names []string
	for _, p := range set.Providers {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"utilities", "compliance", "memory"}, names)

	set = Default(Options{Enabled: func(name string) bool { return name != "memory" }})
	require.Len(t, set.Providers, 2)
	assert.Nil(t, set.memory)
	assert.NoError(t, set.Close())
}

package llmtools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

func testRegistry(t *testing.T) *toolexecutor.Registry {
	t.Helper()
	reg := toolexecutor.NewRegistry()
	noop := toolexecutor.HandlerFunc(func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return nil, nil
	})

	require.NoError(t, reg.Register(toolexecutor.ToolDefinition{
		Name:        "gst_verify",
		Description: "Verify a GSTIN",
		Category:    "compliance",
		Parameters: []toolexecutor.ToolParameter{
			{Name: "gstin", Type: "string", Description: "15-character GSTIN", Required: true},
			{Name: "include_filings", Type: "boolean", Description: "Add filing history", Default: false},
		},
		Handler: noop,
	}))
	require.NoError(t, reg.Register(toolexecutor.ToolDefinition{
		Name:        "time_now",
		Description: "Current time",
		Handler:     noop,
	}))
	return reg
}

func TestAnthropic(t *testing.T) {
	tools := Anthropic(testRegistry(t).GetToolDefinitions())
	require.Len(t, tools, 2)
	require.NotNil(t, tools[0].OfTool)

	raw, err := json.Marshal(tools[0])
	require.NoError(t, err)
	doc := gjson.ParseBytes(raw)

	assert.Equal(t, "gst_verify", doc.Get("name").String())
	assert.Equal(t, "Verify a GSTIN", doc.Get("description").String())
	assert.Equal(t, "object", doc.Get("input_schema.type").String())
	assert.Equal(t, "string", doc.Get("input_schema.properties.gstin.type").String())
	assert.Equal(t, "boolean", doc.Get("input_schema.properties.include_filings.type").String())
	assert.Equal(t, `["gstin"]`, doc.Get("input_schema.required").Raw)

	raw, err = json.Marshal(tools[1])
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(raw, "input_schema.required").Exists())
}

func TestOpenAI(t *testing.T) {
	tools := OpenAI(testRegistry(t).GetToolDefinitions())
	require.Len(t, tools, 2)

	raw, err := json.Marshal(tools[0])
	require.NoError(t, err)
	doc := gjson.ParseBytes(raw)

	assert.Equal(t, "function", doc.Get("type").String())
	assert.Equal(t, "gst_verify", doc.Get("function.name").String())
	assert.Equal(t, "object", doc.Get("function.parameters.type").String())
	assert.Equal(t, "15-character GSTIN", doc.Get("function.parameters.properties.gstin.description").String())
	assert.Equal(t, `["gstin"]`, doc.Get("function.parameters.required").Raw)
}

func TestFromRegistry(t *testing.T) {
	a, o := FromRegistry(testRegistry(t))
	assert.Len(t, a, 2)
	assert.Len(t, o, 2)

	a, o = FromRegistry(toolexecutor.NewRegistry())
	assert.Empty(t, a)
	assert.Empty(t, o)
}

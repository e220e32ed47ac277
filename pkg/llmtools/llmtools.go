// Package llmtools converts registry tool descriptors into LLM SDK tool params.
package llmtools

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// Anthropic converts descriptors into Messages API tool params
func Anthropic(descriptors []toolexecutor.ToolDescriptor) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(descriptors))
	for _, d := range descriptors {
		toolParam := anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: d.Parameters.Properties.Map(),
			},
		}
		if len(d.Parameters.Required) > 0 {
			toolParam.InputSchema.Required = append([]string(nil), d.Parameters.Required...)
		}
		tools = append(tools, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return tools
}

// OpenAI converts descriptors into Chat Completions function tools
func OpenAI(descriptors []toolexecutor.ToolDescriptor) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, 0, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        d.Name,
				Description: openai.String(d.Description),
				Parameters:  openai.FunctionParameters(d.Parameters.Map()),
			},
		})
	}
	return tools
}

// FromRegistry returns both SDK forms for every registered tool
func FromRegistry(reg *toolexecutor.Registry) ([]anthropic.ToolUnionParam, []openai.ChatCompletionToolParam) {
	descriptors := reg.GetToolDefinitions()
	return Anthropic(descriptors), OpenAI(descriptors)
}

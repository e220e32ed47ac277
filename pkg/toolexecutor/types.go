package toolexecutor

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrToolNotFound is returned when a tool name is not registered
	ErrToolNotFound = errors.New("tool not found")

	// ErrUnconfigured marks a tool whose credentials or backing dependency are missing.
	// Handlers wrap it with guidance text; the executor reports it as a failed result.
	ErrUnconfigured = errors.New("tool not configured")
)

// Unconfigured builds an ErrUnconfigured error carrying guidance for the caller
func Unconfigured(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnconfigured, fmt.Sprintf(format, args...))
}

// ToolParameter defines a parameter for a tool
type ToolParameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
}

// Handler executes a tool call
type Handler interface {
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// HandlerFunc adapts a plain function to Handler
type HandlerFunc func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Execute calls f(ctx, params)
func (f HandlerFunc) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	return f(ctx, params)
}

// ToolDefinition defines a tool's metadata and handler
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Parameters  []ToolParameter `json:"parameters"`
	Handler     Handler         `json:"-"`
}

// RequiredParameters returns the names of required parameters in declaration order
func (d ToolDefinition) RequiredParameters() []string {
	required := []string{}
	for _, p := range d.Parameters {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return required
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	Success  bool                   `json:"success"`
	Data     interface{}            `json:"data,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Tool returns the tool name recorded in the result metadata
func (r ToolResult) Tool() string {
	name, _ := r.Metadata[MetaTool].(string)
	return name
}

// DurationMS returns the recorded wall-clock duration in milliseconds
func (r ToolResult) DurationMS() int64 {
	switch v := r.Metadata[MetaDurationMS].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Metadata keys
const (
	MetaTool         = "tool"
	MetaDurationMS   = "duration_ms"
	MetaExecutionID  = "execution_id"
	MetaUnconfigured = "unconfigured"
	MetaPanic        = "panic"
)

// Call is a single invocation request inside a batch
type Call struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

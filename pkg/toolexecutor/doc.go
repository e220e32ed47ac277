// Package toolexecutor registers tools by name and dispatches calls to them.
//
// Invariants:
// - Tool names are unique; registering a name again replaces the previous definition.
// - Each tool belongs to at most one recognized category bucket.
// - Execution never returns an error: unknown tools, invalid parameters, handler
//   errors and handler panics all become a ToolResult with Success == false.
// - ExecuteMany returns results in input order regardless of completion order.
//
// Usage:
//
//	reg := toolexecutor.NewRegistry()
//	_ = reg.Register(toolexecutor.ToolDefinition{
//		Name:        "echo",
//		Description: "Echo input",
//		Parameters:  []toolexecutor.ToolParameter{{Name: "text", Type: "string", Description: "text", Required: true}},
//		Handler: toolexecutor.HandlerFunc(func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
//			return params["text"], nil
//		}),
//	}, "utilities")
//	result := toolexecutor.NewExecutor(reg).ExecuteOne(ctx, "echo", map[string]interface{}{"text": "hi"})
package toolexecutor

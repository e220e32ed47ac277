package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// NormalizeParameters converts provider parameter metadata into an ordered list.
//
// Accepted shapes:
//   - a JSON array of {"name", "type", "description", "required", "default"} objects (list order kept)
//   - a JSON object keyed by parameter name whose values are parameter objects or a bare type string
//     (key order kept)
//   - a JSON Schema object {"type": "object", "properties": {...}, "required": [...]} (property order kept)
//
// gjson walks objects in document order, which a Go map cannot preserve.
func NormalizeParameters(raw json.RawMessage) ([]toolexecutor.ToolParameter, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []toolexecutor.ToolParameter{}, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidParameters)
	}

	res := gjson.ParseBytes(trimmed)
	var params []toolexecutor.ToolParameter

	switch {
	case res.IsArray():
		for i, item := range res.Array() {
			if !item.IsObject() {
				return nil, fmt.Errorf("%w: list entry %d is not an object", ErrInvalidParameters, i)
			}
			name := strings.TrimSpace(item.Get("name").String())
			if name == "" {
				return nil, fmt.Errorf("%w: list entry %d has no name", ErrInvalidParameters, i)
			}
			params = append(params, parameterFrom(name, item, false))
		}

	case res.IsObject() && isJSONSchema(res):
		required := map[string]bool{}
		for _, r := range res.Get("required").Array() {
			required[r.String()] = true
		}
		res.Get("properties").ForEach(func(key, value gjson.Result) bool {
			params = append(params, parameterFrom(key.String(), value, required[key.String()]))
			return true
		})

	case res.IsObject():
		res.ForEach(func(key, value gjson.Result) bool {
			params = append(params, parameterFrom(key.String(), value, false))
			return true
		})

	default:
		return nil, fmt.Errorf("%w: expected a list or a mapping, got %s", ErrInvalidParameters, res.Type)
	}

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrInvalidParameters, p.Name)
		}
		seen[p.Name] = true
	}

	if params == nil {
		params = []toolexecutor.ToolParameter{}
	}
	return params, nil
}

// isJSONSchema reports whether an object is a JSON Schema rather than a name-keyed mapping
func isJSONSchema(res gjson.Result) bool {
	return res.Get("type").String() == "object" && res.Get("properties").IsObject()
}

func parameterFrom(name string, spec gjson.Result, required bool) toolexecutor.ToolParameter {
	if spec.Type == gjson.String {
		return toolexecutor.ToolParameter{Name: name, Type: normalizeType(spec.String()), Required: required}
	}

	param := toolexecutor.ToolParameter{
		Name:        name,
		Type:        normalizeType(typeOf(spec.Get("type"))),
		Description: spec.Get("description").String(),
		Required:    required || spec.Get("required").Bool(),
	}
	if spec.Get("optional").Bool() {
		param.Required = false
	}
	if def := spec.Get("default"); def.Exists() {
		param.Default = def.Value()
	}
	return param
}

// typeOf handles both "type": "string" and "type": ["string", "null"]
func typeOf(t gjson.Result) string {
	if !t.IsArray() {
		return t.String()
	}
	for _, item := range t.Array() {
		if item.String() != "null" {
			return item.String()
		}
	}
	return ""
}

var typeAliases = map[string]string{
	"string":  "string",
	"str":     "string",
	"text":    "string",
	"integer": "integer",
	"int":     "integer",
	"number":  "number",
	"float":   "number",
	"double":  "number",
	"decimal": "number",
	"boolean": "boolean",
	"bool":    "boolean",
	"array":   "array",
	"list":    "array",
	"object":  "object",
	"dict":    "object",
	"map":     "object",
	"json":    "object",
}

// normalizeType maps provider type spellings onto JSON Schema types; unknown types become string
func normalizeType(t string) string {
	if mapped, ok := typeAliases[strings.ToLower(strings.TrimSpace(t))]; ok {
		return mapped
	}
	return "string"
}

// normalizeTool turns a provider tool into a registry definition
func normalizeTool(raw RawTool, fallback toolexecutor.Handler) (toolexecutor.ToolDefinition, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return toolexecutor.ToolDefinition{}, fmt.Errorf("tool name is empty")
	}

	params, err := NormalizeParameters(raw.Parameters)
	if err != nil {
		return toolexecutor.ToolDefinition{}, fmt.Errorf("tool %s: %w", name, err)
	}

	handler := raw.Handler
	if handler == nil {
		handler = fallback
	}

	return toolexecutor.ToolDefinition{
		Name:        name,
		Description: strings.TrimSpace(raw.Description),
		Category:    resolveCategory(raw.Category, name),
		Parameters:  params,
		Handler:     handler,
	}, nil
}

package toolexecutor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ToolDescriptor is the function-calling schema handed to LLM callers
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"parameters"`
}

// ParameterSchema is the JSON Schema object describing a tool's arguments
type ParameterSchema struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Required   []string   `json:"required"`
}

// PropertySchema describes a single argument
type PropertySchema struct {
	Name        string      `json:"-"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// Properties keeps parameter declaration order when marshalled
type Properties []PropertySchema

// MarshalJSON writes the properties as a JSON object in declaration order
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(prop)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", prop.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Map returns the properties as a plain map, as SDK tool params expect
func (p Properties) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for _, prop := range p {
		entry := map[string]interface{}{
			"type":        prop.Type,
			"description": prop.Description,
		}
		if prop.Default != nil {
			entry["default"] = prop.Default
		}
		out[prop.Name] = entry
	}
	return out
}

// Map returns the whole schema as a plain map
func (s ParameterSchema) Map() map[string]interface{} {
	required := make([]string, len(s.Required))
	copy(required, s.Required)
	return map[string]interface{}{
		"type":       s.Type,
		"properties": s.Properties.Map(),
		"required":   required,
	}
}

// Describe builds the function-calling descriptor for a definition
func Describe(def ToolDefinition) ToolDescriptor {
	props := make(Properties, 0, len(def.Parameters))
	for _, param := range def.Parameters {
		props = append(props, PropertySchema{
			Name:        param.Name,
			Type:        param.Type,
			Description: param.Description,
			Default:     param.Default,
		})
	}

	return ToolDescriptor{
		Name:        def.Name,
		Description: def.Description,
		Parameters: ParameterSchema{
			Type:       "object",
			Properties: props,
			Required:   def.RequiredParameters(),
		},
	}
}

// generateJSONSchema generates a JSON Schema from tool parameters.
// Unknown arguments are allowed; providers differ in how strict they are.
func generateJSONSchema(def ToolDefinition) (*gojsonschema.Schema, error) {
	schemaMap := Describe(def).Parameters.Map()
	if len(def.RequiredParameters()) == 0 {
		delete(schemaMap, "required")
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return nil, err
	}

	return schema, nil
}

// validateParameters validates parameters against a JSON Schema
func validateParameters(schema *gojsonschema.Schema, params map[string]interface{}) error {
	if schema == nil {
		return nil
	}

	paramsLoader := gojsonschema.NewGoLoader(params)
	result, err := schema.Validate(paramsLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		errors := []string{}
		for _, err := range result.Errors() {
			errors = append(errors, err.String())
		}
		return fmt.Errorf("validation errors: %v", errors)
	}

	return nil
}

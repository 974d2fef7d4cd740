package tooldef

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// ToJSONSchema converts a ToolDef's parameter list to a JSON Schema
// document describing the accepted argument object.
func (d ToolDef) ToJSONSchema() *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema)
	var required []string

	for _, param := range d.Params {
		schema := &jsonschema.Schema{
			Description: param.Description,
		}

		switch param.Type {
		case ParamTypeString, ParamTypeURL:
			schema.Type = "string"
			if param.Pattern != "" {
				schema.Pattern = param.Pattern
			}
			if len(param.Enum) > 0 {
				enum := make([]any, len(param.Enum))
				for i, v := range param.Enum {
					enum[i] = v
				}
				schema.Enum = enum
			}
		case ParamTypeInteger:
			schema.Type = "integer"
			schema.Minimum = param.Minimum
			schema.Maximum = param.Maximum
		case ParamTypeBoolean:
			schema.Type = "boolean"
		case ParamTypeStringMap:
			schema.Type = "object"
			schema.AdditionalProperties = &jsonschema.Schema{Type: "string"}
		}

		properties[param.Name] = schema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	inputSchema := &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
	}

	if len(required) > 0 {
		inputSchema.Required = required
	}

	return inputSchema
}

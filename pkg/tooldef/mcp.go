package tooldef

import "github.com/mark3labs/mcp-go/mcp"

// ToMCPTool converts a ToolDef to an mcp.Tool
func (d ToolDef) ToMCPTool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	if d.Title != "" {
		opts = append(opts, mcp.WithTitleAnnotation(d.Title))
	}
	if d.ReadOnly {
		opts = append(opts, mcp.WithReadOnlyHintAnnotation(true))
	}
	if d.Destructive {
		opts = append(opts, mcp.WithDestructiveHintAnnotation(true))
	}
	if d.Idempotent {
		opts = append(opts, mcp.WithIdempotentHintAnnotation(true))
	}
	if d.OpenWorld {
		opts = append(opts, mcp.WithOpenWorldHintAnnotation(true))
	}

	for _, param := range d.Params {
		switch param.Type {
		case ParamTypeString, ParamTypeURL:
			stringOpts := []mcp.PropertyOption{mcp.Description(param.Description)}
			if param.Required {
				stringOpts = append(stringOpts, mcp.Required())
			}
			if param.Pattern != "" {
				stringOpts = append(stringOpts, mcp.Pattern(param.Pattern))
			}
			if len(param.Enum) > 0 {
				stringOpts = append(stringOpts, mcp.Enum(param.Enum...))
			}
			if param.DefaultString != "" {
				stringOpts = append(stringOpts, mcp.DefaultString(param.DefaultString))
			}
			opts = append(opts, mcp.WithString(param.Name, stringOpts...))

		case ParamTypeInteger:
			numOpts := []mcp.PropertyOption{mcp.Description(param.Description)}
			if param.Required {
				numOpts = append(numOpts, mcp.Required())
			}
			if param.Minimum != nil {
				numOpts = append(numOpts, mcp.Min(*param.Minimum))
			}
			if param.Maximum != nil {
				numOpts = append(numOpts, mcp.Max(*param.Maximum))
			}
			if param.DefaultNumber != nil {
				numOpts = append(numOpts, mcp.DefaultNumber(*param.DefaultNumber))
			}
			opts = append(opts, mcp.WithNumber(param.Name, numOpts...))

		case ParamTypeBoolean:
			boolOpts := []mcp.PropertyOption{mcp.Description(param.Description)}
			if param.Required {
				boolOpts = append(boolOpts, mcp.Required())
			}
			opts = append(opts, mcp.WithBoolean(param.Name, boolOpts...))

		case ParamTypeStringMap:
			objOpts := []mcp.PropertyOption{
				mcp.Description(param.Description),
				mcp.AdditionalProperties(map[string]any{"type": "string"}),
			}
			if param.Required {
				objOpts = append(objOpts, mcp.Required())
			}
			opts = append(opts, mcp.WithObject(param.Name, objOpts...))
		}
	}

	tool := mcp.NewTool(d.Name, opts...)

	// Workaround for tools with no parameters
	// See https://github.com/containers/kubernetes-mcp-server/pull/341/files
	if len(d.Params) == 0 {
		tool.InputSchema = mcp.ToolInputSchema{}
		tool.RawInputSchema = []byte(`{"type":"object","properties":{}}`)
	}

	return tool
}

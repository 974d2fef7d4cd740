package tooldef

// ToolDef defines a tool that can be converted to different formats
// (MCP tool, JSON Schema document for docs generation).
type ToolDef struct {
	Name        string
	Description string
	Title       string
	Params      []ParamDef
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	OpenWorld   bool
}

// ParamDef defines a tool parameter
type ParamDef struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Pattern     string
	// Enum restricts a string parameter to a fixed set of values.
	Enum []string
	// Minimum and Maximum bound an integer parameter (inclusive).
	Minimum *float64
	Maximum *float64
	// DefaultString and DefaultNumber are advertised in the schema;
	// applying them to absent arguments is the handler's job.
	DefaultString string
	DefaultNumber *float64
}

// ParamType represents the type of a parameter
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeBoolean ParamType = "boolean"
	ParamTypeInteger ParamType = "integer"
	// ParamTypeURL is a string that must parse as an absolute http/https URL.
	ParamTypeURL ParamType = "url"
	// ParamTypeStringMap is an object with string values (e.g. extra headers).
	ParamTypeStringMap ParamType = "stringmap"
)

// Param returns the parameter definition with the given name, or nil.
func (d ToolDef) Param(name string) *ParamDef {
	for i := range d.Params {
		if d.Params[i].Name == name {
			return &d.Params[i]
		}
	}
	return nil
}

// Float is a convenience helper for optional numeric bounds and defaults.
func Float(v float64) *float64 { return &v }

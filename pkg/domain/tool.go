package domain

// ParameterSpec describes a single parameter accepted by a tool.
// A spec without a default is required: every call must supply it.
type ParameterSpec struct {
	Type        string `json:"type" yaml:"type" mapstructure:"type"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`

	// HasDefault distinguishes an absent default from an explicit zero
	// value (e.g. origin_x: 0). Set by the catalog loader.
	HasDefault bool `json:"-" yaml:"-" mapstructure:"-"`
}

// Required reports whether the parameter must be supplied by the caller.
func (p ParameterSpec) Required() bool {
	return !p.HasDefault
}

// ToolDescriptor is the immutable definition of one tool in the catalog.
type ToolDescriptor struct {
	Name        string                   `json:"name" yaml:"name"`
	Description string                   `json:"description" yaml:"description"`
	Parameters  map[string]ParameterSpec `json:"parameters" yaml:"parameters"`
	Docs        string                   `json:"docs" yaml:"docs"`
}

// ToolCall is one requested invocation: a tool name plus raw arguments.
// Arguments may be partial; missing optional parameters are filled from
// the descriptor defaults during processing.
type ToolCall struct {
	Name       string         `json:"tool_name" yaml:"tool_name" mapstructure:"tool_name"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
}

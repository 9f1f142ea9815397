// Package registry implements the in-memory tool registry: declarative
// registration of tool descriptors with metadata, and the uniform result
// envelope every handler returns (spec §3, §4.5).
package registry

import "context"

// Category is one of the fixed tool groupings from spec §3.
type Category string

const (
	CategoryPods        Category = "pods"
	CategoryDeployments Category = "deployments"
	CategoryCore        Category = "core"
	CategoryCluster     Category = "cluster"
	CategoryNetworking  Category = "networking"
	CategoryStorage     Category = "storage"
	CategorySecurity    Category = "security"
	CategoryHelm        Category = "helm"
	CategoryOperations  Category = "operations"
	CategoryDiagnostics Category = "diagnostics"
	CategoryCost        Category = "cost"
	CategoryKind        Category = "kind"
	CategoryPrompt      Category = "prompt"
)

// ParamType is the JSON-Schema-ish primitive type of one input parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

// Param describes one entry of a ToolDescriptor's input_schema.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     interface{}
	Description string
}

// Annotations mirrors spec §3 ToolDescriptor.annotations.
type Annotations struct {
	ReadOnly    bool
	Destructive bool
	Title       string
}

// Input is the bound, validated parameter set handed to a Handler.
type Input map[string]interface{}

// String returns the string value of key, or def if absent/wrong type.
func (in Input) String(key, def string) string {
	if v, ok := in[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// Int returns the integer value of key, or def if absent/wrong type.
func (in Input) Int(key string, def int) int {
	if v, ok := in[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return def
}

// Bool returns the boolean value of key, or def if absent/wrong type.
func (in Input) Bool(key string, def bool) bool {
	if v, ok := in[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// StringSlice returns a []string from a JSON array value, or nil.
func (in Input) StringSlice(key string) []string {
	v, ok := in[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ErrorKind discriminates ToolResult failures per spec §7.
type ErrorKind string

const (
	ErrorKindPolicy      ErrorKind = "policy"
	ErrorKindTimeout     ErrorKind = "timeout"
	ErrorKindUnavailable ErrorKind = "unavailable"
	ErrorKindConfig      ErrorKind = "config"
	ErrorKindAPI         ErrorKind = "api"
	ErrorKindInternal    ErrorKind = "internal"
	ErrorKindInvalid     ErrorKind = "invalid_params"
)

// Result is the uniform envelope every handler returns (spec §3 ToolResult).
// Exactly one of Result/Error is populated.
type Result struct {
	Success   bool        `json:"success"`
	Result    interface{} `json:"result,omitempty"`
	Command   string      `json:"command,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind ErrorKind   `json:"error_kind,omitempty"`
}

// Ok builds a successful Result, optionally annotated with the reproduced
// command line.
func Ok(result interface{}, command string) *Result {
	return &Result{Success: true, Result: result, Command: command}
}

// Fail builds a failed Result with the given error kind.
func Fail(kind ErrorKind, format string, args ...interface{}) *Result {
	return &Result{Success: false, Error: sprintf(format, args...), ErrorKind: kind}
}

// Handler is the callable every ToolDescriptor registers. It receives bound,
// validated parameters and must never panic or return (nil, nil); it returns
// a Result on any condition, including failure, per spec §4.8 "Errors".
type Handler func(ctx context.Context, in Input) (*Result, error)

// Descriptor describes one exposed operation (spec §3 ToolDescriptor).
type Descriptor struct {
	Name        string
	Description string
	Category    Category
	Params      []Param
	Annotations Annotations
	Handler     Handler
}

// Validate enforces the ToolDescriptor invariant: destructive implies not
// read_only.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return errEmptyName
	}
	if d.Description == "" {
		return errEmptyDescription(d.Name)
	}
	if d.Annotations.Destructive && d.Annotations.ReadOnly {
		return errDestructiveReadOnly(d.Name)
	}
	if d.Handler == nil {
		return errNilHandler(d.Name)
	}
	return nil
}

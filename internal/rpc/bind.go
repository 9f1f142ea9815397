package rpc

import (
	"fmt"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
)

// bindError is returned by bindInput and always maps to CodeInvalidParams.
type bindError struct{ msg string }

func (e *bindError) Error() string { return e.msg }

// bindInput validates raw against the tool's declared parameters, applying
// defaults, and reports missing required fields as an error the caller turns
// into -32602 "Invalid params" (spec §4.6 step 3, §9 "Dynamic **kwargs
// dispatch" design note: binding is table-driven from input_schema instead of
// introspecting a function signature).
func bindInput(params []registry.Param, raw map[string]interface{}) (registry.Input, error) {
	out := make(registry.Input, len(params))
	seen := make(map[string]bool, len(raw))
	for k := range raw {
		seen[k] = true
	}

	for _, p := range params {
		v, present := raw[p.Name]
		if !present {
			if p.Required {
				return nil, &bindError{msg: fmt.Sprintf("missing required parameter %q", p.Name)}
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}
		delete(seen, p.Name)
		if !typeMatches(p.Type, v) {
			return nil, &bindError{msg: fmt.Sprintf("parameter %q must be of type %s", p.Name, p.Type)}
		}
		out[p.Name] = v
	}

	for extra := range seen {
		return nil, &bindError{msg: fmt.Sprintf("unexpected parameter %q", extra)}
	}

	return out, nil
}

func typeMatches(t registry.ParamType, v interface{}) bool {
	switch t {
	case registry.TypeString:
		_, ok := v.(string)
		return ok
	case registry.TypeInteger:
		switch v.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case registry.TypeBoolean:
		_, ok := v.(bool)
		return ok
	case registry.TypeArray:
		_, ok := v.([]interface{})
		return ok
	case registry.TypeObject:
		_, ok := v.(map[string]interface{})
		return ok
	default:
		return true
	}
}

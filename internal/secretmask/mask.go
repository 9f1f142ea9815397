// Package secretmask scrubs secrets out of tool output before it reaches the
// MCP client. It is a pure text/JSON transformer applied once, immediately
// before serialization, by the dispatcher (spec §4.2 / §4.6 step 5).
package secretmask

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Redacted is the placeholder substituted for masked values, matching the
// teacher's internal/tools/output/secrets.go convention of a single constant
// placeholder rather than variable-length redaction (keeps output size
// bounded and the "never widens beyond token size" property in spec §8 trivially
// true for any input, since Redacted is fixed-length).
const Redacted = "[MASKED]"

// sensitiveKeys are JSON/YAML object keys whose values are always masked,
// matched case-insensitively, per spec §4.2.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"passwd":        true,
	"token":         true,
	"secret":        true,
	"api_key":       true,
	"apikey":        true,
	"bearer":        true,
	"authorization": true,
}

// base64Run matches a run of 20+ base64-alphabet characters.
var base64Run = regexp.MustCompile(`[A-Za-z0-9+/_=-]{20,}`)

// yamlKVLine matches "key: value" or "key=value" lines so we can mask just
// the value portion while preserving key and punctuation, per spec §4.2.
var yamlKVLine = regexp.MustCompile(`(?m)^(\s*["']?)([A-Za-z0-9_.\-]+)(["']?\s*[:=]\s*)(.*)$`)

// Mask applies every substitution rule to an arbitrary string. It is
// idempotent: Mask(Mask(s)) == Mask(s).
func Mask(s string) string {
	if s == "" {
		return s
	}
	s = maskKeyedLines(s)
	s = maskBase64Runs(s)
	return s
}

// maskKeyedLines masks the value portion of lines whose key matches a
// sensitive key, case-insensitively.
func maskKeyedLines(s string) string {
	return yamlKVLine.ReplaceAllStringFunc(s, func(line string) string {
		m := yamlKVLine.FindStringSubmatch(line)
		if m == nil {
			return line
		}
		key := strings.ToLower(strings.Trim(m[2], `"'`))
		if !sensitiveKeys[key] {
			return line
		}
		if strings.TrimSpace(m[4]) == Redacted {
			return line // already masked; keep idempotent
		}
		return m[1] + m[2] + m[3] + Redacted
	})
}

// maskBase64Runs masks any run of >=20 base64-alphabet characters, skipping
// runs that are already exactly the redacted token.
func maskBase64Runs(s string) string {
	return base64Run.ReplaceAllStringFunc(s, func(run string) string {
		if run == Redacted {
			return run
		}
		return Redacted
	})
}

// MaskJSON masks an arbitrary JSON-serializable value in place (on a deep
// copy) by walking maps/slices and masking string leaves, plus special-casing
// Kubernetes Secret-shaped objects so every value under data/stringData is
// masked regardless of whether it matches a sensitive-key pattern (spec §4.2
// third bullet).
func MaskJSON(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return maskMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = MaskJSON(item)
		}
		return out
	case string:
		return Mask(val)
	default:
		return v
	}
}

func maskMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	isSecret := strings.EqualFold(asString(m["kind"]), "Secret")
	for k, v := range m {
		lower := strings.ToLower(k)
		switch {
		case isSecret && (lower == "data" || lower == "stringdata"):
			out[k] = maskAllValues(v)
		case sensitiveKeys[lower]:
			out[k] = Redacted
		default:
			out[k] = MaskJSON(v)
		}
	}
	return out
}

// maskAllValues replaces every value in a map with Redacted regardless of key,
// used for Secret.data/stringData.
func maskAllValues(v interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	out := make(map[string]interface{}, len(m))
	for k := range m {
		out[k] = Redacted
	}
	return out
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// MaskAny masks a value of unknown shape by round-tripping it through JSON.
// Used by the dispatcher so it need not know the concrete type returned by a
// tool handler's ToolResult.Result field.
func MaskAny(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		// Not JSON-serializable as a tree; fall back to masking its string form.
		if s, ok := v.(string); ok {
			return Mask(s)
		}
		return v
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return v
	}
	return MaskJSON(generic)
}

package client

import (
	"encoding/json"
	"fmt"
)

// Result is the uniform collaborator response: a flat mapping carrying at
// minimum a success indicator and a human-readable "message". An explicit
// error=true marks an operational failure, distinct from a business-negative
// outcome such as valid=false.
type Result map[string]any

// ParseResult normalizes the transport-level shapes a collaborator may
// return: a single mapping, a non-empty array of mappings (first element
// used), or a string that itself encodes a mapping. Unparsable text becomes
// an operational error carrying the raw text as its message.
func ParseResult(raw []byte) Result {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		return Result(obj)
	}

	var arr []map[string]any
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return Result(arr[0])
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if err := json.Unmarshal([]byte(str), &obj); err == nil {
			return Result(obj)
		}
		return ErrorResult(str)
	}

	return ErrorResult(string(raw))
}

// ErrorResult builds an operational-error Result with the given message.
func ErrorResult(message string) Result {
	return Result{"error": true, "message": message}
}

// IsError reports whether the collaborator flagged an operational failure.
func (r Result) IsError() bool {
	return r.Bool("error")
}

// Message returns the human-readable message, or a fallback.
func (r Result) Message() string {
	if m := r.Str("message"); m != "" {
		return m
	}
	return "unknown error"
}

// Bool returns the named field as a bool, false when absent or mistyped.
func (r Result) Bool(key string) bool {
	v, ok := r[key].(bool)
	return ok && v
}

// Str returns the named field as a string, "" when absent or mistyped.
func (r Result) Str(key string) string {
	v, _ := r[key].(string)
	return v
}

// Float returns the named field as a float64. JSON numbers decode as
// float64; other numeric types are converted for in-process collaborators.
func (r Result) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Strings returns the named field as a []string, tolerating []any payloads
// produced by JSON decoding.
func (r Result) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return nil
	}
}

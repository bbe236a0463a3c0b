// Package validation sanitizes and validates course-domain payloads before
// persistence. Validators are exhaustive per call: every field violation is
// collected and reported together so a caller can fix all issues in one
// round-trip. Reference fields are checked for syntax and converted to
// uuid.UUID; whether the referenced record exists is the caller's problem.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Error carries every violation found during a validate call
type Error struct {
	Entity     string
	Violations []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(e.Violations, ", "))
}

// present reports whether a field carries a usable value. Missing keys,
// nils and empty strings all count as absent.
func present(payload map[string]interface{}, field string) bool {
	v, ok := payload[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}

// asString returns the value as a string if it is one
func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber coerces numeric-looking values via numeric parse.
// JSON decodes numbers as float64; form bodies deliver strings.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asInt coerces to an integer, rejecting fractional values
func asInt(v interface{}) (int, bool) {
	f, ok := asNumber(v)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// asBool applies a truthy cast to boolean-looking values
func asBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(b) {
		case "", "false", "0":
			return false
		default:
			return true
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	case nil:
		return false
	default:
		return true
	}
}

// asRef parses a store reference id (UUID string or uuid.UUID)
func asRef(v interface{}) (uuid.UUID, bool) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, true
	case string:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, false
		}
		return parsed, true
	default:
		return uuid.Nil, false
	}
}

// asSlice normalizes array-valued payload fields
func asSlice(v interface{}) ([]interface{}, bool) {
	switch arr := v.(type) {
	case []interface{}:
		return arr, true
	case []string:
		out := make([]interface{}, len(arr))
		for i, s := range arr {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// asMap returns the value as an object payload
func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func enumError(field string, values []string) string {
	return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

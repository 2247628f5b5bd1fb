package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Value is the result of resolving a dotted path against a Tree. The zero
// Value is absent. A present Value keeps the native type decoded from the
// document so callers can tell false, "" and 0 apart from "not set".
type Value struct {
	raw     any
	present bool
}

// Absent is the Value returned for any path that does not resolve.
var Absent = Value{}

func present(v any) Value {
	return Value{raw: v, present: true}
}

// Present reports whether the path resolved to a non-null value.
func (v Value) Present() bool {
	return v.present
}

// AsString returns the value if it is a string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, v.present && ok
}

// AsBool returns the value if it is a boolean.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, v.present && ok
}

// AsNumber returns the value as float64 if it is any numeric type.
func (v Value) AsNumber() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch n := v.raw.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsInt returns the value as an int if it is a whole number.
func (v Value) AsInt() (int, bool) {
	f, ok := v.AsNumber()
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// AsList returns a copy of the value if it is a sequence.
func (v Value) AsList() ([]any, bool) {
	l, ok := v.raw.([]any)
	if !v.present || !ok {
		return nil, false
	}
	return clone(l).([]any), true
}

// AsMap returns a copy of the value if it is a mapping.
func (v Value) AsMap() (map[string]any, bool) {
	m, ok := v.raw.(map[string]any)
	if !v.present || !ok {
		return nil, false
	}
	return clone(m).(map[string]any), true
}

// StringOr returns the string value, or def when absent or not a string.
func (v Value) StringOr(def string) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return def
}

// NonEmptyString reports whether the value is a string with non-whitespace content.
func (v Value) NonEmptyString() bool {
	s, ok := v.AsString()
	return ok && strings.TrimSpace(s) != ""
}

// Strings returns the string elements of a list value. Non-string elements are skipped.
func (v Value) Strings() []string {
	l, ok := v.AsList()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, e := range l {
		switch s := e.(type) {
		case string:
			out = append(out, s)
		case int, int64, uint64, float64, json.Number:
			out = append(out, fmt.Sprint(s))
		}
	}
	return out
}

// Display renders the value for messages.
func (v Value) Display() string {
	if !v.present {
		return "<unset>"
	}
	if s, ok := v.raw.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v.raw)
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}
		return out
	default:
		return t
	}
}

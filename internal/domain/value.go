package domain

import (
	"bytes"
	"encoding/json"
)

// Value is a raw JSON value kept verbatim, so a numeric amount stays numeric
// and a string amount stays a string until it is rendered.
type Value json.RawMessage

// TextValue wraps a plain string (e.g. a sentinel) as a JSON string value.
func TextValue(s string) Value {
	b, _ := json.Marshal(s)
	return Value(b)
}

// Present reports whether the key carrying this value existed in the source document.
func (v Value) Present() bool {
	return len(v) > 0
}

// IsString reports whether the value is a JSON string.
func (v Value) IsString() bool {
	b := bytes.TrimSpace(v)
	return len(b) > 0 && b[0] == '"'
}

// IsNull reports whether the value is the JSON literal null.
func (v Value) IsNull() bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// Field returns member key of a JSON object. ok is false when the value is
// not an object or has no such member; a member set to null is present.
func (v Value) Field(key string) (Value, bool) {
	var fields map[string]Value
	if err := json.Unmarshal(v, &fields); err != nil {
		return nil, false
	}
	field, ok := fields[key]
	return field, ok
}

// Index returns element i of a JSON array. Only the array itself is decoded,
// its elements stay raw.
func (v Value) Index(i int) (Value, bool) {
	var items []Value
	if err := json.Unmarshal(v, &items); err != nil || i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

// String renders the value for tabular output: strings are unquoted, null is
// empty and everything else is the JSON literal as received.
func (v Value) String() string {
	b := bytes.TrimSpace(v)
	if len(b) == 0 || string(b) == "null" {
		return ""
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return s
		}
	}

	return string(b)
}

// Truthy mirrors the loose truthiness the catalog API relies on: null, false,
// zero, "" and empty objects or arrays are all false.
func (v Value) Truthy() bool {
	if !v.Present() {
		return false
	}

	var decoded any
	if err := json.Unmarshal(v, &decoded); err != nil {
		return false
	}

	switch x := decoded.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present() {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = append((*v)[0:0], data...)
	return nil
}

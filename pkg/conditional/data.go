package conditional

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Data is a decoded JSON object. All accessors are nil-safe: a missing key
// or a value of the wrong shape resolves to the zero value.
type Data map[string]any

// Get returns the raw value stored under key.
func (d Data) Get(key string) any {
	if d == nil {
		return nil
	}
	return d[key]
}

// String returns the string under key, or "".
func (d Data) String(key string) string {
	s, _ := d.Get(key).(string)
	return s
}

// Strings returns the string list under key. A single string is not promoted to a list.
func (d Data) Strings(key string) []string {
	return asStrings(d.Get(key))
}

// Float returns the number under key.
func (d Data) Float(key string) (float64, bool) {
	return toFloat(d.Get(key))
}

// Object returns the nested object under key, or nil.
func (d Data) Object(key string) Data {
	return asObject(d.Get(key))
}

// List returns the list of objects under key. Non-object elements are skipped.
func (d Data) List(key string) []Data {
	arr, ok := d.Get(key).([]any)
	if !ok {
		return nil
	}
	out := make([]Data, 0, len(arr))
	for _, elem := range arr {
		if obj := asObject(elem); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

// Has reports whether key is present.
func (d Data) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d[key]
	return ok
}

// DecodeData converts an arbitrary JSON-compatible Go value into Data by
// round-tripping it through encoding/json.
func DecodeData(v any) (Data, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return d, nil
}

// Decode unmarshals d into out.
func (d Data) Decode(out any) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// asObject converts a decoded JSON object to Data.
func asObject(v any) Data {
	switch o := v.(type) {
	case Data:
		return o
	case map[string]any:
		return Data(o)
	default:
		return nil
	}
}

// asStrings converts a decoded JSON array to a string list.
// Numeric ids are rendered the way they appear in JSON.
func asStrings(v any) []string {
	switch arr := v.(type) {
	case []string:
		return arr
	case []any:
		out := make([]string, 0, len(arr))
		for _, elem := range arr {
			if s, ok := asKey(elem); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// asKey renders a scalar used as an option key. Geo areas and organigram
// nodes are often keyed by numbers.
func asKey(v any) (string, bool) {
	switch k := v.(type) {
	case string:
		return k, true
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64), true
	case int:
		return strconv.Itoa(k), true
	case int64:
		return strconv.FormatInt(k, 10), true
	case json.Number:
		return k.String(), true
	default:
		return "", false
	}
}

// toFloat converts a value to float64 if possible.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		// Don't auto-convert strings to numbers
		return 0, false
	default:
		return 0, false
	}
}

// isTruthy mirrors JavaScript truthiness for the values stored in entries.
// nil, false, 0 and "" are falsy.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := toFloat(v); ok {
			return f != 0
		}
		return true
	}
}

package validation

import (
	"encoding/json"
	"fmt"
	"math"
)

// Payload is the decoded `data` object of a request body.
//
// Values keep their JSON shapes: strings, float64 (or json.Number),
// bool, nil, []any and map[string]any.
type Payload map[string]any

// Get returns the raw value for field and whether the key is present.
func (p Payload) Get(field string) (any, bool) {
	v, ok := p[field]
	return v, ok
}

// String returns the value of field if it is a string, "" otherwise.
func (p Payload) String(field string) string {
	s, _ := p[field].(string)
	return s
}

// Int returns the value of field if it is an integral JSON number, 0 otherwise.
func (p Payload) Int(field string) int {
	n, _ := integer(p[field])
	return n
}

// List returns the elements of a list field that are JSON objects.
func (p Payload) List(field string) []Payload {
	raw, _ := p[field].([]any)
	items := make([]Payload, 0, len(raw))
	for _, item := range raw {
		if obj, ok := asPayload(item); ok {
			items = append(items, obj)
		}
	}
	return items
}

// Text renders a truthy value of field for messages, "" for falsy values.
func (p Payload) Text(field string) string {
	v := p[field]
	if !Truthy(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Truthy reports whether v counts as "present" for a required field.
//
// nil, false, "", 0 and NaN are falsy. Lists and objects are truthy even
// when empty.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// integer converts an integral JSON number to int.
// Strings, fractions and anything non-numeric are rejected.
func integer(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case int:
		return t, true
	default:
		return 0, false
	}
}

func asPayload(v any) (Payload, bool) {
	switch t := v.(type) {
	case map[string]any:
		return Payload(t), true
	case Payload:
		return t, true
	default:
		return nil, false
	}
}

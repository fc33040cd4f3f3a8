package prefs

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type is the declared value type of a preference. The names follow the
// JSON value kinds, so persisted values can be checked after a reload.
type Type string

const (
	TypeAny     Type = ""
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// ParseType converts a declared type name. Empty means untyped.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeAny, TypeBoolean, TypeNumber, TypeString, TypeObject, TypeArray:
		return t, nil
	}
	return "", fmt.Errorf("unknown preference type %q", s)
}

// typeOf reports the Type a Go value belongs to, or "" when it fits none.
func typeOf(v any) Type {
	if v == nil {
		return TypeAny
	}
	switch v.(type) {
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case json.Number:
		return TypeNumber
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return TypeBoolean
	case reflect.String:
		return TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Map:
		if reflect.TypeOf(v).Key().Kind() == reflect.String {
			return TypeObject
		}
	case reflect.Slice, reflect.Array:
		return TypeArray
	}
	return TypeAny
}

// check returns ErrTypeMismatch when v does not fit t. TypeAny accepts anything.
func (t Type) check(v any) error {
	if t == TypeAny {
		return nil
	}
	if got := typeOf(v); got != t {
		return fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, t, v)
	}
	return nil
}

// coerce checks v against t and returns its normalized form. The normalized
// value is checked again, since a JSON round trip can change the kind
// ([]byte becomes a string) or drop a typed nil container.
func (t Type) coerce(v any) (any, error) {
	if err := t.check(v); err != nil {
		return nil, err
	}
	out, err := normalize(v)
	if err != nil {
		return nil, err
	}
	if err := t.check(out); err != nil {
		return nil, fmt.Errorf("%w: expected %s, %T does not encode as one", ErrTypeMismatch, t, v)
	}
	return out, nil
}

// normalize converts v into the shape it would have after a JSON round trip
// (numbers become float64, maps map[string]any, slices []any), so values read
// back from memory and from storage compare equal.
func normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, float64:
		return x, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode preference value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode preference value: %w", err)
	}
	return out, nil
}

// clone deep-copies a normalized value.
func clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = clone(e)
		}
		return out
	}
	return v
}

package prefs

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseValue converts command-line text into a value of type t. Objects and
// arrays are read as JSON. Untyped preferences take JSON when the text
// parses as JSON and the raw string otherwise.
func ParseValue(t Type, raw string) (any, error) {
	switch t {
	case TypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, raw)
		}
		return b, nil
	case TypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, raw)
		}
		return f, nil
	case TypeString:
		return raw, nil
	case TypeObject, TypeArray:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("%w: %q is not a JSON %s", ErrTypeMismatch, raw, t)
		}
		if err := t.check(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, nil
	}
	return raw, nil
}

// Format is an export file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .json is YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode renders exported values in f.
func Encode(f Format, values map[string]map[string]any) ([]byte, error) {
	if f == FormatJSON {
		return json.MarshalIndent(values, "", "  ")
	}
	return yaml.Marshal(values)
}

// Decode parses a file written by Encode.
func Decode(f Format, data []byte) (map[string]map[string]any, error) {
	out := map[string]map[string]any{}
	var err error
	if f == FormatJSON {
		err = json.Unmarshal(data, &out)
	} else {
		err = yaml.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s preferences: %w", f, err)
	}
	return out, nil
}

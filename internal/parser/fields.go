package parser

import (
	"errors"
	"fmt"
)

var errInvalidUTF8 = errors.New("file contents are not valid UTF-8")

// navigate walks a decoded TOML table along the given dotted path,
// returning the leaf value and whether every intermediate table was
// present. A missing intermediate table is "unset", not an error —
// unknown/absent keys are simply absent fields.
func navigate(table map[string]interface{}, keys ...string) (interface{}, bool) {
	var cur interface{} = table
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, present := m[k]
		if !present {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func getBool(table map[string]interface{}, keys ...string) (bool, bool, error) {
	v, ok := navigate(table, keys...)
	if !ok {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, fmt.Errorf("expected a boolean, got %T", v)
	}
	return b, true, nil
}

func getString(table map[string]interface{}, keys ...string) (string, bool, error) {
	v, ok := navigate(table, keys...)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("expected a string, got %T", v)
	}
	return s, true, nil
}

func getEnum(table map[string]interface{}, allowed []string, keys ...string) (string, bool, error) {
	s, present, err := getString(table, keys...)
	if err != nil || !present {
		return s, present, err
	}
	for _, a := range allowed {
		if s == a {
			return s, true, nil
		}
	}
	return "", false, fmt.Errorf("invalid value %q, expected one of %v", s, allowed)
}

func getStringSlice(table map[string]interface{}, keys ...string) ([]string, bool, error) {
	v, ok := navigate(table, keys...)
	if !ok {
		return nil, false, nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false, fmt.Errorf("expected an array of strings, got %T", v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("expected an array of strings, found element of type %T", item)
		}
		out = append(out, s)
	}
	return out, true, nil
}

package util

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw is an untyped upstream JSON object. Mappers never trust its shape:
// every field goes through one of the guards below, which report whether a
// usable value was found instead of failing.
type Raw = map[string]any

// Decode parses a JSON object keeping numbers as json.Number so large
// upstream ids survive intact.
func Decode(body []byte) (Raw, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out Raw
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Raw{}
	}
	return out, nil
}

// Lookup walks nested objects along path.
func Lookup(raw Raw, path ...string) (any, bool) {
	var cur any = raw
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// String returns a string-ish value at path. Numbers are formatted; anything
// else is rejected.
func String(raw Raw, path ...string) (string, bool) {
	v, ok := Lookup(raw, path...)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	}
	return "", false
}

// FirstString returns the first non-blank string among top-level keys.
func FirstString(raw Raw, keys ...string) string {
	for _, k := range keys {
		if s, ok := String(raw, k); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Number accepts JSON numbers and numeric strings.
func Number(raw Raw, path ...string) (float64, bool) {
	v, ok := Lookup(raw, path...)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		return f, err == nil
	}
	return 0, false
}

// Bool accepts JSON booleans and "true"/"false" strings.
func Bool(raw Raw, path ...string) (bool, bool) {
	v, ok := Lookup(raw, path...)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	}
	return false, false
}

func Object(raw Raw, path ...string) (Raw, bool) {
	v, ok := Lookup(raw, path...)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

func Array(raw Raw, path ...string) ([]any, bool) {
	v, ok := Lookup(raw, path...)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// Objects returns the object elements of the array at path; other
// elements are skipped.
func Objects(raw Raw, path ...string) []Raw {
	arr, _ := Array(raw, path...)
	out := make([]Raw, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Strings returns the non-blank string elements of the array at path.
func Strings(raw Raw, path ...string) ([]string, bool) {
	arr, ok := Array(raw, path...)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out, true
}

// Count reads a total-count field; absent or non-numeric values count as 0
// and oversized ones saturate at math.MaxInt.
func Count(raw Raw, path ...string) int {
	f, ok := Number(raw, path...)
	if !ok || math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return int(f)
}

func Float(v float64) *float64 { return &v }

func BoolPtr(v bool) *bool { return &v }

package utils

import "math"

// StringValue returns the string stored under key, or false if the key is
// absent or holds a different type.
func StringValue(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// IntValue returns the integer stored under key. JSON decoding produces
// float64 for all numbers, so integral floats are accepted.
func IntValue(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

// FloatValue returns the float stored under key, or false on absence or type
// mismatch.
func FloatValue(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// BoolValue returns the boolean stored under key, or false on absence or type
// mismatch.
func BoolValue(m map[string]any, key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// ObjectValue returns the nested JSON object stored under key.
func ObjectValue(m map[string]any, key string) (map[string]any, bool) {
	o, ok := m[key].(map[string]any)
	return o, ok
}

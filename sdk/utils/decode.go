// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import "fmt"

/* ------------ tolerant decoding of map[string]any payloads ------------ */

// StringField returns the first of the given keys holding a non-empty string.
// The API is not consistent about field casing (request_id vs requestId), so
// callers list every spelling they have seen on the wire and get one
// canonical value back, with ok=false when none is present.
func StringField(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// IntField decodes an integer that JSON may deliver as float64, int or
// numeric string.
func IntField(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int64(n), true
		case int:
			return int64(n), true
		case int64:
			return n, true
		case string:
			var parsed int64
			if _, err := fmt.Sscanf(n, "%d", &parsed); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// MapField returns a nested object field.
func MapField(m map[string]any, keys ...string) (map[string]any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if mm, ok := v.(map[string]any); ok {
				return mm, true
			}
		}
	}
	return nil, false
}

// ListField returns a nested array field.
func ListField(m map[string]any, keys ...string) ([]any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if l, ok := v.([]any); ok {
				return l, true
			}
		}
	}
	return nil, false
}

// StringsField reads a field that may be a single string or a list of
// strings (dataset metadata stores contributors both ways).
func StringsField(m map[string]any, keys ...string) ([]string, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return []string{t}, true
			}
		case []any:
			var out []string
			for _, el := range t {
				if s, ok := el.(string); ok {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out, true
			}
		}
	}
	return nil, false
}

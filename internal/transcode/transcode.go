// Package transcode converts JSON object keys between the client naming
// convention (camelCase) and the API convention (snake_case).
//
// The conversion is purely lexical and is not idempotent by detection: a
// camelCase key with adjacent capitals such as "userID" goes out as
// "user_i_d" and only comes back as "userID" because the inverse rule
// happens to undo it. Keys are never inspected to guess which convention
// they are already in.
package transcode

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SnakeToCamel replaces every "_x", x a lowercase ASCII letter, with "X".
func SnakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && isLower(s[i+1]) {
			b.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToSnake replaces every uppercase ASCII letter X with "_x".
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUpper(c) {
			b.WriteByte('_')
			b.WriteByte(c - 'A' + 'a')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

// ToClient rewrites keys of every nested object to camelCase.
func ToClient(v any) any { return walk(v, SnakeToCamel) }

// ToServer rewrites keys of every nested object to snake_case.
func ToServer(v any) any { return walk(v, CamelToSnake) }

func walk(v any, key func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[key(k)] = walk(val, key)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = walk(val, key)
		}
		return out
	default:
		return v
	}
}

// Encode marshals v (camelCase json tags) into a snake_case request body.
func Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	generic, err := decodeGeneric(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ToServer(generic))
}

// Decode unmarshals a snake_case response body into out. An empty body
// leaves out untouched.
func Decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	generic, err := decodeGeneric(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(ToClient(generic))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// numbers stay json.Number so money values are not rounded through float64
func decodeGeneric(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
